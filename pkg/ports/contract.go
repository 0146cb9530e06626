package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore implementation
// adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	agentID := "contract-test-agent-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(agentID, "patrol")
		snap.Local["foo"] = "bar"
		snap.Local["count"] = 42
		snap.Ticks = 7
		snap.LastStatus = domain.Running

		err := store.Save(ctx, agentID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, agentID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "patrol", loaded.Tree)
		assert.Equal(t, uint64(7), loaded.Ticks)
		assert.Equal(t, domain.Running, loaded.LastStatus)
		assert.Equal(t, "bar", loaded.Local["foo"])
		// JSON backends turn integers into float64; only existence is part of the contract.
		assert.NotNil(t, loaded.Local["count"])
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		snap := domain.NewSnapshot(agentID, "patrol")
		require.NoError(t, store.Save(ctx, agentID, snap))

		snap.Local["mutated"] = true
		loaded, err := store.Load(ctx, agentID)
		require.NoError(t, err)
		assert.NotContains(t, loaded.Local, "mutated")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+agentID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, agentID, domain.NewSnapshot(agentID, "patrol"))
		require.NoError(t, err)

		err = store.Delete(ctx, agentID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, agentID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := agentID + "-1"
		id2 := agentID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot(id1, "patrol"))
		_ = store.Save(ctx, id2, domain.NewSnapshot(id2, "patrol"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		agents, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, agents, id1)
		assert.Contains(t, agents, id2)
	})
}
