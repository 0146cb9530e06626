package blackboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// DebugPrefix marks local entries written for external inspection.
const DebugPrefix = "debug."

// Blackboard is the data store passed to every tick.
type Blackboard struct {
	local  map[string]any
	global Scope
}

// New creates a blackboard with an empty local scope bound to the given global scope.
// A nil global gets a private Shared scope, visible to this blackboard only.
func New(global Scope) *Blackboard {
	if global == nil {
		global = NewShared()
	}
	return &Blackboard{
		local:  make(map[string]any),
		global: global,
	}
}

// GlobalScope returns the injected global handle.
func (b *Blackboard) GlobalScope() Scope {
	return b.global
}

// Local returns a local value, failing when the key is absent.
func (b *Blackboard) Local(key string) (any, error) {
	v, ok := b.local[key]
	if !ok {
		return nil, fmt.Errorf("local %q: %w", key, domain.ErrKeyNotFound)
	}
	return v, nil
}

// Global returns a global value, failing when the key is absent.
func (b *Blackboard) Global(key string) (any, error) {
	v, ok := b.global.Get(key)
	if !ok {
		return nil, fmt.Errorf("global %q: %w", key, domain.ErrKeyNotFound)
	}
	return v, nil
}

// LocalOr returns the local value or def when absent.
func (b *Blackboard) LocalOr(key string, def any) any {
	if v, ok := b.local[key]; ok {
		return v
	}
	return def
}

// GlobalOr returns the global value or def when absent.
func (b *Blackboard) GlobalOr(key string, def any) any {
	if v, ok := b.global.Get(key); ok {
		return v
	}
	return def
}

func (b *Blackboard) HasLocal(key string) bool {
	_, ok := b.local[key]
	return ok
}

func (b *Blackboard) HasGlobal(key string) bool {
	return b.global.Has(key)
}

func (b *Blackboard) SetLocal(key string, value any) {
	b.local[key] = value
}

func (b *Blackboard) SetGlobal(key string, value any) {
	b.global.Set(key, value)
}

func (b *Blackboard) DeleteLocal(key string) {
	delete(b.local, key)
}

// Lookup searches the local scope, then the global one.
func (b *Blackboard) Lookup(key string) (any, bool) {
	if v, ok := b.local[key]; ok {
		return v, true
	}
	return b.global.Get(key)
}

// LocalKeys returns the local keys in sorted order.
func (b *Blackboard) LocalKeys() []string {
	keys := make([]string, 0, len(b.local))
	for k := range b.local {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LocalSnapshot returns a shallow copy of the local scope.
func (b *Blackboard) LocalSnapshot() map[string]any {
	out := make(map[string]any, len(b.local))
	for k, v := range b.local {
		out[k] = v
	}
	return out
}

// RestoreLocal replaces the local scope with a copy of data.
func (b *Blackboard) RestoreLocal(data map[string]any) {
	b.local = make(map[string]any, len(data))
	for k, v := range data {
		b.local[k] = v
	}
}

// DebugEntries returns the local entries written under DebugPrefix.
func (b *Blackboard) DebugEntries() map[string]any {
	out := make(map[string]any)
	for k, v := range b.local {
		if strings.HasPrefix(k, DebugPrefix) {
			out[k] = v
		}
	}
	return out
}

// DebugKey builds the "debug.<label>:<field>" key used by the debug surface.
func DebugKey(label, field string) string {
	return DebugPrefix + label + ":" + field
}

// DeltaKey is the local entry the host writes before every tick with the
// elapsed time, in seconds, since the previous tick.
const DeltaKey = "delta"
