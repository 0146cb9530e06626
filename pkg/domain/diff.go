package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots of the same agent.
// It is designed to be serialized to JSON for partial updates on an inspector.
type SnapshotDiff struct {
	// AgentID is always present to identify the target.
	AgentID string `json:"agent_id"`

	Status *Status `json:"status,omitempty"`
	Ticks  *uint64 `json:"ticks,omitempty"`

	// Local contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Local map[string]any `json:"local,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap.
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{
		AgentID: newSnap.AgentID,
	}

	if oldSnap == nil || oldSnap.LastStatus != newSnap.LastStatus {
		status := newSnap.LastStatus
		diff.Status = &status
	}
	if oldSnap == nil || oldSnap.Ticks != newSnap.Ticks {
		ticks := newSnap.Ticks
		diff.Ticks = &ticks
	}

	diff.Local = diffLocal(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffLocal(old *Snapshot, new *Snapshot) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Local {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Local {
		oldVal, exists := old.Local[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	for k := range old.Local {
		if _, exists := new.Local[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Status == nil &&
		d.Ticks == nil &&
		len(d.Local) == 0
}
