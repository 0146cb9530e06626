package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// Chain combines hook sets. Each event is delivered to every set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var builds []func(context.Context, *domain.BuildEvent)
	var starts, ends []func(context.Context, *domain.TickEvent)
	for _, h := range sets {
		if h.OnBuild != nil {
			builds = append(builds, h.OnBuild)
		}
		if h.OnTickStart != nil {
			starts = append(starts, h.OnTickStart)
		}
		if h.OnTickEnd != nil {
			ends = append(ends, h.OnTickEnd)
		}
	}

	var out domain.LifecycleHooks
	if len(builds) > 0 {
		out.OnBuild = func(ctx context.Context, e *domain.BuildEvent) {
			for _, fn := range builds {
				fn(ctx, e)
			}
		}
	}
	if len(starts) > 0 {
		out.OnTickStart = fanOut(starts)
	}
	if len(ends) > 0 {
		out.OnTickEnd = fanOut(ends)
	}
	return out
}

func fanOut(fns []func(context.Context, *domain.TickEvent)) func(context.Context, *domain.TickEvent) {
	return func(ctx context.Context, e *domain.TickEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

// Logging returns hooks that log builds at Info and tick results at Debug.
func Logging(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuild: func(ctx context.Context, e *domain.BuildEvent) {
			logger.InfoContext(ctx, "tree_built",
				"tree", e.Tree,
				"nodes", e.Nodes,
				"warnings", len(e.Warnings),
			)
		},
		OnTickEnd: func(ctx context.Context, e *domain.TickEvent) {
			logger.DebugContext(ctx, "tree_ticked",
				"tree", e.Tree,
				"tick", e.Tick,
				"status", e.Status.String(),
				"duration", e.Duration,
			)
		},
	}
}
