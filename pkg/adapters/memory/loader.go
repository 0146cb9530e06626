package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Loader implements ports.TreeLoader using an in-memory map.
type Loader struct {
	mu    sync.RWMutex
	trees map[string][]byte
}

// NewLoader creates a new MemoryLoader with the provided raw documents (JSON or YAML).
func NewLoader(data map[string]string) *Loader {
	trees := make(map[string][]byte)
	for k, v := range data {
		trees[k] = []byte(v)
	}
	return &Loader{
		trees: trees,
	}
}

// NewFromSpecs creates a new MemoryLoader from domain specs.
// This handles serialization automatically, improving DX for tests.
func NewFromSpecs(specs map[string]domain.Spec) (*Loader, error) {
	data := make(map[string][]byte)
	for name, spec := range specs {
		if spec.Type == "" {
			return nil, fmt.Errorf("tree %s missing type", name)
		}
		bytes, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tree %s: %w", name, err)
		}
		data[name] = bytes
	}
	return &Loader{trees: data}, nil
}

// Put adds or replaces a tree document.
func (l *Loader) Put(name string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trees[name] = data
}

// GetTree retrieves the raw document of a tree by name.
func (l *Loader) GetTree(name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	content, ok := l.trees[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, name)
	}
	return content, nil
}

// ListTrees returns all available tree names.
func (l *Loader) ListTrees() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.trees))
	for k := range l.trees {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
