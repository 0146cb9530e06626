package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_PreservesTypedValues(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	snap := domain.NewSnapshot("scout", "patrol")
	snap.Local["pos"] = domain.Vector{X: 1, Y: 2}
	snap.LastStatus = domain.Running
	require.NoError(t, store.Save(ctx, "scout", snap))

	loaded, err := store.Load(ctx, "scout")
	require.NoError(t, err)
	assert.Equal(t, domain.Running, loaded.LastStatus)

	pos, ok := domain.ToVector(loaded.Local["pos"])
	require.True(t, ok, "vectors decode back from their JSON object form")
	assert.Equal(t, domain.Vector{X: 1, Y: 2}, pos)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	agentID := "agent-ttl"

	err := store.Save(ctx, agentID, domain.NewSnapshot(agentID, "patrol"))
	assert.NoError(t, err)

	agents, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, agents, agentID)

	// Key expiration is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, agentID)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	// Index pruning is driven by wall time.
	time.Sleep(1200 * time.Millisecond)

	agents, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, agents)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "my-agent", domain.NewSnapshot("my-agent", "patrol"))
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:agent:my-agent"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:agents"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, "my-agent")
}

func TestRedisStore_AgentIDCannotShadowIndex(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	for _, id := range []string{"a1", "index", "agents", "agent:index"} {
		require.NoError(t, store.Save(ctx, id, domain.NewSnapshot(id, "patrol")), id)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1", "index", "agents", "agent:index"}, list)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", loaded.AgentID)

	members, err := mr.ZMembers("arbor:agents")
	require.NoError(t, err)
	assert.Len(t, members, 4)
}
