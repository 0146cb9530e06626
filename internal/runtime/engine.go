package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/builder"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Engine builds trees and wires them to the lifecycle hooks.
type Engine struct {
	registry *registry.Registry
	builder  *builder.Builder
	parser   *compiler.Parser
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRegistry replaces the built-in node registry.
func WithRegistry(r *registry.Registry) EngineOption {
	return func(e *Engine) {
		e.registry = r
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		parser: compiler.NewParser(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = registry.NewDefault(e.logger)
	}
	e.builder = builder.New(builder.WithRegistry(e.registry), builder.WithLogger(e.logger))
	return e
}

// Registry returns the registry the engine builds from.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Build creates a named tree from spec.
func (e *Engine) Build(ctx context.Context, name string, spec domain.Spec) (*Tree, []builder.Warning) {
	t := &Tree{name: name, spec: spec, engine: e, last: domain.Failure}
	warnings := t.Rebuild(ctx)
	return t, warnings
}

// Compile parses a JSON or YAML document and builds it.
func (e *Engine) Compile(ctx context.Context, name string, data []byte) (*Tree, []builder.Warning, error) {
	spec, err := e.parser.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile tree %s: %w", name, err)
	}
	t, warnings := e.Build(ctx, name, spec)
	return t, warnings, nil
}

func (e *Engine) emitBuild(ctx context.Context, t *Tree, warnings []builder.Warning) {
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.String())
	}
	e.logger.Debug("tree built", "tree", t.name, "warnings", len(warnings))
	if e.hooks.OnBuild == nil {
		return
	}
	e.hooks.OnBuild(ctx, &domain.BuildEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuild},
		Tree:      t.name,
		Nodes:     t.Serialize().Count(),
		Warnings:  msgs,
	})
}
