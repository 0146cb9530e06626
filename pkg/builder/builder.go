package builder

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/registry"
)

// Warning describes a non-fatal problem found while building.
type Warning struct {
	// Path locates the node, e.g. "patrol/0/2" for the third child of the
	// first child of the tree's top node.
	Path    string `json:"path"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.Path, w.Type, w.Message)
}

// Builder converts between domain.Spec and node graphs.
type Builder struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithRegistry sets the registry used to resolve node types.
func WithRegistry(r *registry.Registry) Option {
	return func(b *Builder) {
		b.registry = r
	}
}

// WithLogger sets a custom structured logger for build warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder. Without WithRegistry it uses registry.NewDefault.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.registry == nil {
		b.registry = registry.NewDefault(b.logger)
	}
	return b
}

// Registry returns the registry the builder resolves types with.
func (b *Builder) Registry() *registry.Registry {
	return b.registry
}

// Build creates a fresh node graph from spec, rooted at a node.Root labelled name.
// Every call yields new nodes, so no runtime state survives a rebuild.
func (b *Builder) Build(name string, spec domain.Spec) (*node.Root, []Warning) {
	root := node.NewRoot(name)
	var warnings []Warning
	if top := b.build(spec, name, &warnings); top != nil {
		root.AddChild(top)
	}
	return root, warnings
}

func (b *Builder) build(spec domain.Spec, path string, warnings *[]Warning) node.Node {
	n, err := b.registry.Create(spec.Type)
	if err != nil {
		b.warn(warnings, Warning{Path: path, Type: spec.Type, Message: "unknown node type, node dropped"})
		return nil
	}

	label := spec.Label
	if label == "" {
		label = spec.Type
	}
	n.SetLabel(label)

	for k, v := range spec.Params {
		if domain.IsReservedKey(k) {
			continue
		}
		n.SetParam(k, v)
	}

	for i, childSpec := range spec.Children {
		childPath := path + "/" + strconv.Itoa(i)
		child := b.build(childSpec, childPath, warnings)
		if child == nil {
			continue
		}
		if limit := n.MaxChildren(); limit != node.Unbounded && len(n.Children()) >= limit {
			b.warn(warnings, Warning{
				Path:    childPath,
				Type:    childSpec.Type,
				Message: fmt.Sprintf("%s %q accepts at most %d children", spec.Type, label, limit),
			})
		}
		n.AddChild(child)
	}
	return n
}

func (b *Builder) warn(warnings *[]Warning, w Warning) {
	b.logger.Warn("tree build", "path", w.Path, "type", w.Type, "problem", w.Message)
	*warnings = append(*warnings, w)
}

// Serialize emits the declarative form of n and its subtree. A node.Root is
// transparent: its authored child is serialized instead.
func (b *Builder) Serialize(n node.Node) domain.Spec {
	return Serialize(n)
}

// Serialize is the registry-independent form of Builder.Serialize.
func Serialize(n node.Node) domain.Spec {
	if n == nil {
		return domain.Spec{}
	}
	if n.Type() == node.TypeRoot {
		children := n.Children()
		if len(children) == 0 {
			return domain.Spec{}
		}
		return Serialize(children[0])
	}

	params := make(map[string]any, len(n.Params()))
	for k, v := range n.Params() {
		params[k] = v
	}
	spec := domain.Spec{
		Type:   n.Type(),
		Label:  n.Label(),
		Params: params,
	}
	for _, c := range n.Children() {
		spec.Children = append(spec.Children, Serialize(c))
	}
	return spec
}
