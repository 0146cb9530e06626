package blackboard

import (
	"sort"
	"sync"
)

// Scope is a concurrency-safe key/value scope shared between tree instances.
type Scope interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Has(key string) bool
	Delete(key string)
	Keys() []string
	Snapshot() map[string]any
}

// Shared is the in-process Scope. Create with NewShared or new(Shared);
// the internal map is lazily initialized on first write.
// Concurrent writers to the same key are last-write-wins.
type Shared struct {
	mu   sync.RWMutex
	data map[string]any
}

var _ Scope = (*Shared)(nil)

// NewShared creates an empty shared scope.
func NewShared() *Shared {
	return &Shared{data: make(map[string]any)}
}

func (s *Shared) init() {
	if s.data == nil {
		s.data = make(map[string]any)
	}
}

// Get retrieves a value and reports whether it was present.
func (s *Shared) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores a value.
func (s *Shared) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	s.data[key] = value
}

// Has returns true if the key exists.
func (s *Shared) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Delete removes a key.
func (s *Shared) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Keys returns all keys in sorted order.
func (s *Shared) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a shallow copy of the scope. Mutable values (slices, maps)
// are shared with the scope and must be copied by the caller before mutation.
func (s *Shared) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
