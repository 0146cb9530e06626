package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type always struct {
	node.Base
}

func (*always) Type() string { return "Always" }

func (*always) Tick(node.Actor, *blackboard.Blackboard) domain.Status { return domain.Success }

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("Always", func() node.Node { return &always{Base: node.NewBase(node.Leaf, nil)} })

	n, err := r.Create("Always")
	require.NoError(t, err)
	assert.Equal(t, "Always", n.Type())
	assert.True(t, r.Has("Always"))

	_, err = r.Create("Never")
	assert.ErrorIs(t, err, domain.ErrUnknownNodeType)
	assert.Contains(t, err.Error(), "Never")
}

func TestRegistry_CreateReturnsFreshNodes(t *testing.T) {
	r := registry.NewDefault(logging.NewNop())

	a, err := r.Create(node.TypeLimiter)
	require.NoError(t, err)
	b, err := r.Create(node.TypeLimiter)
	require.NoError(t, err)

	a.SetParam("count", 9)
	assert.Equal(t, 1, b.Params()["count"])
	assert.NotSame(t, a, b)
}

func TestNewDefault_RegistersBuiltins(t *testing.T) {
	r := registry.NewDefault(logging.NewNop())

	names := r.Names()
	assert.IsNonDecreasing(t, names)
	for _, want := range []string{
		"Sequence", "Select", "SequenceStar", "SelectStar",
		"Inverter", "Succeeder", "Failer", "Limiter", "TimeLimiter", "ClockLimiter", "Debug",
		"BlackboardHas", "BlackboardSet", "BlackboardErase", "BlackboardCompare",
		"DebugPrint", "ReturnStatus", "Wait", "RandomChance", "RandomFloat",
		"VectorMath", "Condition", "Command", "Sense",
	} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, node.TypeRoot)

	for _, name := range names {
		n, err := r.Create(name)
		require.NoError(t, err)
		assert.Equal(t, name, n.Type(), "factory registered under the wrong name")
	}
}

func TestDescribe(t *testing.T) {
	r := registry.NewDefault(logging.NewNop())

	byType := map[string]registry.Descriptor{}
	for _, d := range r.Describe() {
		byType[d.Type] = d
	}

	assert.Equal(t, registry.CategoryComposite, byType["Sequence"].Category)
	assert.Equal(t, registry.CategoryDecorator, byType["ClockLimiter"].Category)
	assert.Equal(t, map[string]any{"seconds": 1.0, "startat": 0.0}, byType["ClockLimiter"].Defaults)
	assert.Equal(t, registry.CategoryLeaf, byType["RandomFloat"].Category)
	assert.Equal(t, "random", byType["RandomFloat"].Defaults["key"])
	assert.Equal(t, node.Single, byType["Debug"].MaxChildren)
	assert.Equal(t, "float", byType["ClockLimiter"].Params["seconds"].Name())
	assert.Equal(t, "int", byType["Limiter"].Params["count"].Name())
	assert.Empty(t, byType["Sequence"].Params)
}

func TestDescribe_ParamsJSON(t *testing.T) {
	r := registry.NewRegistry()
	r.Register(node.TypeLimiter, func() node.Node { return node.NewLimiter() })

	data, err := json.Marshal(r.Describe())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"Limiter","category":"decorator","max_children":1,"defaults":{"count":1},"params":{"count":"int"}}]`, string(data))

	var back []registry.Descriptor
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "int", back[0].Params["count"].Name())
}
