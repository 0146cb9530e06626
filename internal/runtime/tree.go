package runtime

import (
	"context"
	"time"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/builder"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// Tree is a built, named node graph together with its source spec.
// A Tree is not safe for concurrent use; callers serialize ticks.
type Tree struct {
	name   string
	spec   domain.Spec
	root   *node.Root
	ticks  uint64
	last   domain.Status
	engine *Engine
}

func (t *Tree) Name() string { return t.name }

// Root returns the synthetic root of the current graph.
func (t *Tree) Root() *node.Root { return t.root }

// Spec returns the spec the tree was built from.
func (t *Tree) Spec() domain.Spec { return t.spec }

// Ticks returns how many times the tree has been ticked.
func (t *Tree) Ticks() uint64 { return t.ticks }

// LastStatus returns the result of the latest tick, FAILURE before the first.
func (t *Tree) LastStatus() domain.Status { return t.last }

// Tick evaluates the tree once against actor and bb.
func (t *Tree) Tick(ctx context.Context, actor node.Actor, bb *blackboard.Blackboard) domain.Status {
	t.ticks++
	hooks := t.engine.hooks
	start := time.Now()
	if hooks.OnTickStart != nil {
		hooks.OnTickStart(ctx, &domain.TickEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventTickStart},
			Tree:      t.name,
			Tick:      t.ticks,
		})
	}

	status := t.root.Tick(actor, bb)
	t.last = status

	if hooks.OnTickEnd != nil {
		hooks.OnTickEnd(ctx, &domain.TickEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTickEnd},
			Tree:      t.name,
			Tick:      t.ticks,
			Status:    status,
			Duration:  time.Since(start),
		})
	}
	return status
}

// Rebuild discards the current graph, and with it all per-node runtime
// state, and builds a fresh one from the spec.
func (t *Tree) Rebuild(ctx context.Context) []builder.Warning {
	root, warnings := t.engine.builder.Build(t.name, t.spec)
	t.root = root
	t.engine.emitBuild(ctx, t, warnings)
	return warnings
}

// Serialize emits the declarative form of the current graph.
func (t *Tree) Serialize() domain.Spec {
	return builder.Serialize(t.root)
}
