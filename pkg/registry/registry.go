package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/leaf"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/schema"
)

// Factory creates a fresh node with its type defaults in place.
type Factory func() node.Node

// Node categories, derived from the child capacity of the node.
const (
	CategoryComposite = "composite"
	CategoryDecorator = "decorator"
	CategoryLeaf      = "leaf"
)

// Descriptor is a catalog entry describing a registered node type.
type Descriptor struct {
	Type        string         `json:"type" yaml:"type"`
	Category    string         `json:"category" yaml:"category"`
	MaxChildren int            `json:"max_children" yaml:"max_children"`
	Defaults    map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Params      schema.Schema  `json:"params,omitempty" yaml:"-"`
}

// Registry maps stable type names to node factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// NewDefault creates a registry holding every built-in node type.
// The logger is handed to leaves that report through slog; nil means slog.Default.
func NewDefault(logger *slog.Logger) *Registry {
	r := NewRegistry()

	r.Register(node.TypeSequence, func() node.Node { return node.NewSequence() })
	r.Register(node.TypeSelect, func() node.Node { return node.NewSelect() })
	r.Register(node.TypeSequenceStar, func() node.Node { return node.NewSequenceStar() })
	r.Register(node.TypeSelectStar, func() node.Node { return node.NewSelectStar() })

	r.Register(node.TypeInverter, func() node.Node { return node.NewInverter() })
	r.Register(node.TypeSucceeder, func() node.Node { return node.NewSucceeder() })
	r.Register(node.TypeFailer, func() node.Node { return node.NewFailer() })
	r.Register(node.TypeLimiter, func() node.Node { return node.NewLimiter() })
	r.Register(node.TypeTimeLimiter, func() node.Node { return node.NewTimeLimiter() })
	r.Register(node.TypeClockLimiter, func() node.Node { return node.NewClockLimiter() })
	r.Register(node.TypeDebug, func() node.Node { return node.NewDebug() })

	r.Register(leaf.TypeBlackboardHas, func() node.Node { return leaf.NewBlackboardHas() })
	r.Register(leaf.TypeBlackboardSet, func() node.Node { return leaf.NewBlackboardSet() })
	r.Register(leaf.TypeBlackboardErase, func() node.Node { return leaf.NewBlackboardErase() })
	r.Register(leaf.TypeBlackboardCompare, func() node.Node { return leaf.NewBlackboardCompare() })
	r.Register(leaf.TypeDebugPrint, func() node.Node { return leaf.NewDebugPrint(logger) })
	r.Register(leaf.TypeReturnStatus, func() node.Node { return leaf.NewReturnStatus() })
	r.Register(leaf.TypeWait, func() node.Node { return leaf.NewWait() })
	r.Register(leaf.TypeRandomChance, func() node.Node { return leaf.NewRandomChance() })
	r.Register(leaf.TypeRandomFloat, func() node.Node { return leaf.NewRandomFloat() })
	r.Register(leaf.TypeVectorMath, func() node.Node { return leaf.NewVectorMath() })
	r.Register(leaf.TypeCondition, func() node.Node { return leaf.NewCondition(logger) })
	r.Register(leaf.TypeCommand, func() node.Node { return leaf.NewCommand() })
	r.Register(leaf.TypeSense, func() node.Node { return leaf.NewSense() })

	return r
}

// Register adds a node type to the registry.
// If a type with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// Create looks up a node type by name and instantiates it.
// Returns an error wrapping domain.ErrUnknownNodeType if the type is not found.
func (r *Registry) Create(name string) (node.Node, error) {
	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNodeType, name)
	}

	return fn(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Describe builds the catalog of registered types, sorted by name.
func (r *Registry) Describe() []Descriptor {
	names := r.Names()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		n, err := r.Create(name)
		if err != nil {
			// Unregistered concurrently.
			continue
		}
		out = append(out, Descriptor{
			Type:        name,
			Category:    Category(n),
			MaxChildren: n.MaxChildren(),
			Defaults:    n.Params(),
			Params:      schema.Infer(n.Params()),
		})
	}
	return out
}

// Category classifies a node by how many children it accepts.
func Category(n node.Node) string {
	switch n.MaxChildren() {
	case node.Unbounded:
		return CategoryComposite
	case node.Leaf:
		return CategoryLeaf
	default:
		return CategoryDecorator
	}
}
