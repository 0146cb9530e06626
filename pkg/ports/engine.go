package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// AgentRuntime defines the agent lifecycle as seen by driving adapters (e.g., HTTP).
// Implementations serialize ticks per agent.
type AgentRuntime interface {
	// Spawn creates an agent running the named tree. An empty id is generated.
	Spawn(ctx context.Context, tree, id string) (*domain.Snapshot, error)

	// Tick writes delta into the agent's local scope, evaluates its tree once
	// and returns the resulting snapshot.
	Tick(ctx context.Context, id string, delta float64) (*domain.Snapshot, error)

	// Inspect returns the latest snapshot without ticking.
	Inspect(ctx context.Context, id string) (*domain.Snapshot, error)

	// Remove stops tracking the agent and deletes its snapshot.
	Remove(ctx context.Context, id string) error

	// List returns the known agent IDs.
	List(ctx context.Context) ([]string, error)
}
