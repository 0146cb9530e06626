package domain

import "time"

// Snapshot is the persisted state of one agent: its local blackboard plus
// bookkeeping about the last tick. Node runtime state is not part of it.
type Snapshot struct {
	AgentID    string         `json:"agent_id"`
	Tree       string         `json:"tree"`
	Local      map[string]any `json:"local"`
	Ticks      uint64         `json:"ticks"`
	LastStatus Status         `json:"last_status"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot for an agent running the named tree.
func NewSnapshot(agentID, tree string) *Snapshot {
	return &Snapshot{
		AgentID:    agentID,
		Tree:       tree,
		Local:      make(map[string]any),
		LastStatus: Failure,
	}
}

// Clone returns a copy whose Local map can be mutated independently.
// Values are copied shallowly.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Local = make(map[string]any, len(s.Local))
	for k, v := range s.Local {
		c.Local[k] = v
	}
	return &c
}
