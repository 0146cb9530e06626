package dsl

import (
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	spec     domain.Spec
	children []*NodeBuilder
}

// Node starts a node of the given registry type.
func Node(nodeType string) *NodeBuilder {
	return &NodeBuilder{spec: domain.Spec{Type: nodeType}}
}

// Label sets the node label. Unlabelled nodes take their type name when built.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.spec.Label = label
	return n
}

// Param sets a parameter. Strings starting with "$" are blackboard references.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	if n.spec.Params == nil {
		n.spec.Params = make(map[string]any)
	}
	n.spec.Params[key] = value
	return n
}

// Ref sets a parameter to the "$key" reference of a blackboard entry.
func (n *NodeBuilder) Ref(param, key string) *NodeBuilder {
	return n.Param(param, "$"+key)
}

// Child appends a single child.
func (n *NodeBuilder) Child(c *NodeBuilder) *NodeBuilder {
	n.children = append(n.children, c)
	return n
}

// Children appends children in order.
func (n *NodeBuilder) Children(cs ...*NodeBuilder) *NodeBuilder {
	n.children = append(n.children, cs...)
	return n
}

// Spec returns the declarative form of the node and its subtree.
func (n *NodeBuilder) Spec() domain.Spec {
	out := domain.Spec{Type: n.spec.Type, Label: n.spec.Label}
	if len(n.spec.Params) > 0 {
		out.Params = make(map[string]any, len(n.spec.Params))
		for k, v := range n.spec.Params {
			out.Params[k] = v
		}
	}
	for _, c := range n.children {
		out.Children = append(out.Children, c.Spec())
	}
	return out
}

// Sequence is shorthand for Node("Sequence").Children(children...).
func Sequence(children ...*NodeBuilder) *NodeBuilder {
	return Node("Sequence").Children(children...)
}

// Select is shorthand for Node("Select").Children(children...).
func Select(children ...*NodeBuilder) *NodeBuilder {
	return Node("Select").Children(children...)
}

// Library collects named trees.
type Library struct {
	trees map[string]*NodeBuilder
}

// New creates an empty tree library.
func New() *Library {
	return &Library{trees: make(map[string]*NodeBuilder)}
}

// Add registers a tree under name, replacing any previous one.
func (l *Library) Add(name string, root *NodeBuilder) *Library {
	l.trees[name] = root
	return l
}

// Build compiles the library into a memory loader.
func (l *Library) Build() (*memory.Loader, error) {
	specs := make(map[string]domain.Spec, len(l.trees))
	for name, root := range l.trees {
		specs[name] = root.Spec()
	}
	return memory.NewFromSpecs(specs)
}
