package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// SnapshotStore defines the interface for persisting agent blackboards.
// This allows agents to survive restarts and move between replicas.
type SnapshotStore interface {
	// Save persists the snapshot for a given agent ID.
	Save(ctx context.Context, agentID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given agent ID.
	// Returns domain.ErrSnapshotNotFound if the agent has no snapshot.
	Load(ctx context.Context, agentID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given agent ID.
	Delete(ctx context.Context, agentID string) error

	// List returns the IDs of all stored agents.
	List(ctx context.Context) ([]string, error)
}
