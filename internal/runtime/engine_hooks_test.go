package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var built []*domain.BuildEvent
	var started, ended []*domain.TickEvent

	hooks := domain.LifecycleHooks{
		OnBuild: func(ctx context.Context, e *domain.BuildEvent) {
			built = append(built, e)
		},
		OnTickStart: func(ctx context.Context, e *domain.TickEvent) {
			started = append(started, e)
		},
		OnTickEnd: func(ctx context.Context, e *domain.TickEvent) {
			ended = append(ended, e)
		},
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	spec := domain.Spec{
		Type: "Sequence",
		Children: []domain.Spec{
			{Type: "ReturnStatus", Params: map[string]any{"status": "RUNNING"}},
			{Type: "Warp"},
		},
	}
	tree, warnings := engine.Build(ctx, "hooks", spec)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning for unknown type, got %v", warnings)
	}

	if len(built) != 1 {
		t.Fatalf("Expected 1 build event, got %d", len(built))
	}
	if built[0].Tree != "hooks" || built[0].Nodes != 2 || len(built[0].Warnings) != 1 {
		t.Errorf("Unexpected build event: %+v", built[0])
	}

	bb := blackboard.New(nil)
	tree.Tick(ctx, nil, bb)
	tree.Tick(ctx, nil, bb)

	if len(started) != 2 || len(ended) != 2 {
		t.Fatalf("Expected 2 tick starts and ends, got %d/%d", len(started), len(ended))
	}
	if started[1].Tick != 2 || started[1].Type != domain.EventTickStart {
		t.Errorf("Unexpected tick start event: %+v", started[1])
	}
	if ended[0].Status != domain.Running || ended[0].Type != domain.EventTickEnd {
		t.Errorf("Expected RUNNING tick end, got %+v", ended[0])
	}

	tree.Rebuild(ctx)
	if len(built) != 2 {
		t.Errorf("Expected rebuild to emit a build event, got %d", len(built))
	}
}
