package node

import (
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
)

// Actor is the opaque agent a tree drives. Leaves type-assert it to the
// capabilities they need.
type Actor = any

// Node is the polymorphic unit of execution.
type Node interface {
	// Type returns the stable registry name of the node.
	Type() string
	Label() string
	SetLabel(label string)
	// MaxChildren returns -1 for unbounded, 0 for leaves, N for at most N.
	MaxChildren() int
	Children() []Node
	// AddChild appends without enforcing MaxChildren; the builder warns instead.
	AddChild(child Node)
	Params() map[string]any
	SetParam(key string, value any)
	Tick(actor Actor, bb *blackboard.Blackboard) domain.Status
}

// DebugLoader is implemented by nodes that publish diagnostic entries
// ("debug.<label>:...") into the local blackboard.
type DebugLoader interface {
	LoadDebugValues(bb *blackboard.Blackboard)
}

// Base carries the data shared by every node. Embed it by value.
type Base struct {
	label       string
	maxChildren int
	children    []Node
	params      map[string]any
}

// NewBase creates a Base with a copy of the type defaults as its parameter table.
func NewBase(maxChildren int, defaults map[string]any) Base {
	params := make(map[string]any, len(defaults))
	for k, v := range defaults {
		params[k] = v
	}
	return Base{
		maxChildren: maxChildren,
		params:      params,
	}
}

func (b *Base) Label() string { return b.label }

func (b *Base) SetLabel(label string) { b.label = label }

func (b *Base) MaxChildren() int { return b.maxChildren }

func (b *Base) Children() []Node { return b.children }

func (b *Base) AddChild(child Node) { b.children = append(b.children, child) }

func (b *Base) Params() map[string]any { return b.params }

func (b *Base) SetParam(key string, value any) {
	if b.params == nil {
		b.params = make(map[string]any)
	}
	b.params[key] = value
}

// Child returns the i-th child, if any.
func (b *Base) Child(i int) (Node, bool) {
	if i < 0 || i >= len(b.children) {
		return nil, false
	}
	return b.children[i], true
}

// Root is the synthetic node wrapping an authored tree. Its label is the tree name.
type Root struct {
	Base
}

// NewRoot creates an empty root labelled with the tree name.
func NewRoot(name string) *Root {
	r := &Root{Base: NewBase(Single, nil)}
	r.SetLabel(name)
	return r
}

func (*Root) Type() string { return TypeRoot }

// Tick forwards to the authored top node.
func (r *Root) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := r.Child(0)
	if !ok {
		return domain.Failure
	}
	return child.Tick(actor, bb)
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}
