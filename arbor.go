package arbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/builder"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
)

// Tree is a built, named behavior tree. See runtime.Tree.
type Tree = runtime.Tree

// Engine is the high-level entry point for the Arbor library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	loader   ports.TreeLoader
	registry *registry.Registry
	global   blackboard.Scope
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom TreeLoader, bypassing the default directory loader.
func WithLoader(l ports.TreeLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the built-in node types, e.g. to add game-specific leaves.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithGlobal sets the global scope handed to blackboards created by the engine.
func WithGlobal(scope blackboard.Scope) Option {
	return func(e *Engine) {
		e.global = scope
	}
}

// New initializes a new Arbor Engine.
// By default, trees are read from the JSON and YAML files in dir.
// If WithLoader option is provided, dir can be empty.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.loader = file.NewLoader(absPath)
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("library", eng.Name)
	}
	if eng.global == nil {
		eng.global = blackboard.NewShared()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithRegistry(eng.registry),
	)
	eng.registry = eng.runtime.Registry()

	return eng, nil
}

// Load reads the named tree from the loader and builds it.
// Build warnings are logged; they never fail the load.
func (e *Engine) Load(ctx context.Context, name string) (*Tree, error) {
	data, err := e.loader.GetTree(name)
	if err != nil {
		return nil, err
	}
	tree, _, err := e.runtime.Compile(ctx, name, data)
	return tree, err
}

// NewTree builds a fresh instance of the named tree. It lets the Engine act as
// an agent.TreeFactory.
func (e *Engine) NewTree(ctx context.Context, name string) (*Tree, error) {
	return e.Load(ctx, name)
}

// Compile parses a JSON or YAML document and builds it under name.
func (e *Engine) Compile(ctx context.Context, name string, data []byte) (*Tree, []builder.Warning, error) {
	return e.runtime.Compile(ctx, name, data)
}

// Build builds a tree from an in-memory spec.
func (e *Engine) Build(ctx context.Context, name string, spec domain.Spec) (*Tree, []builder.Warning) {
	return e.runtime.Build(ctx, name, spec)
}

// Spec returns the parsed spec of the named tree without building it.
func (e *Engine) Spec(ctx context.Context, name string) (domain.Spec, error) {
	tree, err := e.Load(ctx, name)
	if err != nil {
		return domain.Spec{}, err
	}
	return tree.Spec(), nil
}

// Trees lists the trees available from the loader.
func (e *Engine) Trees() ([]string, error) {
	return e.loader.ListTrees()
}

// NewBlackboard creates a blackboard bound to the engine's global scope.
func (e *Engine) NewBlackboard() *blackboard.Blackboard {
	return blackboard.New(e.global)
}

// Global returns the engine's global scope.
func (e *Engine) Global() blackboard.Scope {
	return e.global
}

// Loader returns the underlying TreeLoader used by the engine.
func (e *Engine) Loader() ports.TreeLoader {
	return e.loader
}

// Registry returns the node registry trees are built from.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
