package arbor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/agent"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Integration(t *testing.T) {
	dir := t.TempDir()
	guard := []byte(`
type: Select
label: root
children:
  - type: BlackboardHas
    key: target
  - type: BlackboardSet
    key: target
    value: $fallback
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guard.yaml"), guard, 0644))

	engine, err := arbor.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), engine.Name)

	names, err := engine.Trees()
	require.NoError(t, err)
	assert.Equal(t, []string{"guard"}, names)

	ctx := context.Background()
	tree, err := engine.Load(ctx, "guard")
	require.NoError(t, err)

	bb := engine.NewBlackboard()
	engine.Global().Set("fallback", "base")

	assert.Equal(t, domain.Success, tree.Tick(ctx, nil, bb))
	assert.Equal(t, "base", bb.LocalOr("target", nil))

	_, err = engine.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestFacade_RequiresDirOrLoader(t *testing.T) {
	_, err := arbor.New("")
	assert.Error(t, err)
}

func TestFacade_LifecycleHooks(t *testing.T) {
	var ticks int
	hooks := domain.LifecycleHooks{
		OnTickEnd: func(ctx context.Context, e *domain.TickEvent) { ticks++ },
	}
	engine, err := arbor.New("", arbor.WithLoader(emptyLoader{}), arbor.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	tree, _ := engine.Build(context.Background(), "t", domain.Spec{Type: "Succeeder"})
	tree.Tick(context.Background(), nil, engine.NewBlackboard())
	assert.Equal(t, 1, ticks)
}

func TestFacade_IsTreeFactory(t *testing.T) {
	var _ agent.TreeFactory = (*arbor.Engine)(nil)
	var _ agent.GlobalProvider = (*arbor.Engine)(nil)
	assert.NotEmpty(t, arbor.Version)
}

func TestFacade_ManagerSharesEngineGlobal(t *testing.T) {
	global := blackboard.NewShared()
	engine, err := arbor.New("", arbor.WithLoader(emptyLoader{}), arbor.WithGlobal(global))
	require.NoError(t, err)

	mgr := agent.NewManager(engine)
	assert.Same(t, global, mgr.Global())
}

type emptyLoader struct{}

func (emptyLoader) GetTree(name string) ([]byte, error) { return nil, domain.ErrTreeNotFound }
func (emptyLoader) ListTrees() ([]string, error)         { return nil, nil }
