package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/ports"
)

// TreeFactory builds a fresh tree instance by name.
type TreeFactory interface {
	NewTree(ctx context.Context, name string) (*runtime.Tree, error)
}

// TreeFactoryFunc adapts a function to TreeFactory.
type TreeFactoryFunc func(ctx context.Context, name string) (*runtime.Tree, error)

func (f TreeFactoryFunc) NewTree(ctx context.Context, name string) (*runtime.Tree, error) {
	return f(ctx, name)
}

// GlobalProvider is implemented by tree factories that own a global scope.
// NewManager adopts it unless WithGlobal says otherwise.
type GlobalProvider interface {
	Global() blackboard.Scope
}

// ActorResolver returns the actor handed to an agent's tree on every tick.
type ActorResolver func(agentID string) node.Actor

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// instance is a live agent: its tree and its local blackboard.
type instance struct {
	tree  *runtime.Tree
	bb    *blackboard.Blackboard
	ticks uint64
	last  domain.Status
}

// Manager orchestrates agent access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	trees  TreeFactory
	store  ports.SnapshotStore
	global blackboard.Scope
	actors ActorResolver

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	agentsMu sync.RWMutex
	agents   map[string]*instance

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithStore persists snapshots in store instead of memory.
func WithStore(store ports.SnapshotStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithGlobal shares scope between all agents of the manager.
func WithGlobal(scope blackboard.Scope) Option {
	return func(m *Manager) {
		m.global = scope
	}
}

// WithActors sets how agents are mapped to the actor their tree drives.
func WithActors(resolve ActorResolver) Option {
	return func(m *Manager) {
		m.actors = resolve
	}
}

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = locker
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new agent Manager building trees through trees.
func NewManager(trees TreeFactory, opts ...Option) *Manager {
	m := &Manager{
		trees:   trees,
		locks:   make(map[string]*lockEntry),
		agents:  make(map[string]*instance),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(), // Default to no-op
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = memory.NewStore()
	}
	if m.global == nil {
		if p, ok := trees.(GlobalProvider); ok {
			m.global = p.Global()
		}
	}
	if m.global == nil {
		m.global = blackboard.NewShared()
	}
	if m.actors == nil {
		m.actors = func(string) node.Actor { return nil }
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(agentID) after unlocking.
func (m *Manager) acquire(agentID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[agentID]
	if !exists {
		entry = &lockEntry{}
		m.locks[agentID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(agentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[agentID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, agentID)
	}
}

// WithLock executes a function while holding the lock for the agent.
func (m *Manager) WithLock(ctx context.Context, agentID string, fn func(context.Context) error) error {
	entry := m.acquire(agentID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(agentID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, agentID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"agent_id", agentID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Global returns the scope shared by all agents.
func (m *Manager) Global() blackboard.Scope {
	return m.global
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// Spawn creates an agent running the named tree and persists its empty snapshot.
func (m *Manager) Spawn(ctx context.Context, treeName, id string) (*domain.Snapshot, error) {
	if id == "" {
		id = uuid.NewString()
	}
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if m.lookup(id) != nil {
			return fmt.Errorf("%w: %s", domain.ErrAgentExists, id)
		}
		if _, err := m.store.Load(ctx, id); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrAgentExists, id)
		} else if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return fmt.Errorf("failed to check agent existence: %w", err)
		}

		tree, err := m.trees.NewTree(ctx, treeName)
		if err != nil {
			return fmt.Errorf("failed to build tree for agent %s: %w", id, err)
		}
		inst := &instance{tree: tree, bb: blackboard.New(m.global), last: domain.Failure}

		snap = m.snapshot(id, inst)
		if err := m.store.Save(ctx, id, snap); err != nil {
			return fmt.Errorf("failed to initialize agent: %w", err)
		}
		m.track(id, inst)
		m.logger.Info("agent spawned", "agent_id", id, "tree", treeName)
		return nil
	})
	return snap, err
}

// Tick writes delta into the agent's local scope, evaluates its tree once and
// persists the resulting snapshot.
func (m *Manager) Tick(ctx context.Context, id string, delta float64) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		inst, err := m.instance(ctx, id)
		if err != nil {
			return err
		}
		before := m.snapshot(id, inst)

		inst.bb.SetLocal(blackboard.DeltaKey, delta)
		inst.last = inst.tree.Tick(ctx, m.actors(id), inst.bb)
		inst.ticks++

		snap = m.snapshot(id, inst)
		if err := m.store.Save(ctx, id, snap); err != nil {
			return fmt.Errorf("failed to save agent %s: %w", id, err)
		}
		if diff := domain.Diff(before, snap); diff != nil {
			m.logger.Debug("agent ticked", "agent_id", id, "status", snap.LastStatus, "changed", len(diff.Local))
		}
		return nil
	})
	return snap, err
}

// Inspect returns the agent's latest snapshot without ticking.
func (m *Manager) Inspect(ctx context.Context, id string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if inst := m.lookup(id); inst != nil {
			snap = m.snapshot(id, inst)
			return nil
		}
		var err error
		snap, err = m.load(ctx, id)
		return err
	})
	return snap, err
}

// Debug returns the agent's "debug." entries.
func (m *Manager) Debug(ctx context.Context, id string) (map[string]any, error) {
	snap, err := m.Inspect(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for k, v := range snap.Local {
		if strings.HasPrefix(k, blackboard.DebugPrefix) {
			out[k] = v
		}
	}
	return out, nil
}

// Remove forgets the agent and deletes its snapshot.
func (m *Manager) Remove(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		if m.lookup(id) == nil {
			if _, err := m.load(ctx, id); err != nil {
				return err
			}
		}
		m.agentsMu.Lock()
		delete(m.agents, id)
		m.agentsMu.Unlock()

		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete agent %s: %w", id, err)
		}
		m.logger.Info("agent removed", "agent_id", id)
		return nil
	})
}

// List returns live and stored agent IDs.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	stored, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(stored))
	for _, id := range stored {
		seen[id] = true
	}
	m.agentsMu.RLock()
	for id := range m.agents {
		seen[id] = true
	}
	m.agentsMu.RUnlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Manager) lookup(id string) *instance {
	m.agentsMu.RLock()
	defer m.agentsMu.RUnlock()
	return m.agents[id]
}

func (m *Manager) track(id string, inst *instance) {
	m.agentsMu.Lock()
	defer m.agentsMu.Unlock()
	m.agents[id] = inst
}

func (m *Manager) load(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, err := m.store.Load(ctx, id)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAgentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent %s: %w", id, err)
	}
	return snap, nil
}

// instance returns the live agent, restoring it from its snapshot when needed.
// Node runtime state is not persisted, so a restored tree starts fresh.
// Must be called with the agent lock held.
func (m *Manager) instance(ctx context.Context, id string) (*instance, error) {
	if inst := m.lookup(id); inst != nil {
		return inst, nil
	}
	snap, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, err := m.trees.NewTree(ctx, snap.Tree)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild tree for agent %s: %w", id, err)
	}
	bb := blackboard.New(m.global)
	bb.RestoreLocal(snap.Local)

	inst := &instance{tree: tree, bb: bb, ticks: snap.Ticks, last: snap.LastStatus}
	m.track(id, inst)
	m.logger.Info("agent restored", "agent_id", id, "tree", snap.Tree, "ticks", snap.Ticks)
	return inst, nil
}

func (m *Manager) snapshot(id string, inst *instance) *domain.Snapshot {
	return &domain.Snapshot{
		AgentID:    id,
		Tree:       inst.tree.Name(),
		Local:      inst.bb.LocalSnapshot(),
		Ticks:      inst.ticks,
		LastStatus: inst.last,
		UpdatedAt:  m.now(),
	}
}
