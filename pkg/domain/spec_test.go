package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const selectJSON = `{"type":"Select","label":"root","children":[{"type":"BlackboardHas","key":"target"},{"type":"DebugPrint","message":"no target"}]}`

func TestSpec_UnmarshalJSON(t *testing.T) {
	var spec domain.Spec
	require.NoError(t, json.Unmarshal([]byte(selectJSON), &spec))

	assert.Equal(t, "Select", spec.Type)
	assert.Equal(t, "root", spec.Label)
	assert.Empty(t, spec.Params)
	require.Len(t, spec.Children, 2)

	assert.Equal(t, "BlackboardHas", spec.Children[0].Type)
	assert.Equal(t, "", spec.Children[0].Label)
	assert.Equal(t, map[string]any{"key": "target"}, spec.Children[0].Params)
	assert.Equal(t, map[string]any{"message": "no target"}, spec.Children[1].Params)
	assert.Equal(t, 3, spec.Count())
}

func TestSpec_UnmarshalYAML(t *testing.T) {
	src := `
type: Sequence
label: patrol
children:
  - type: Limiter
    count: 2
    children:
      - type: Command
        command: move
        speed: 1.5
`
	var spec domain.Spec
	require.NoError(t, yaml.Unmarshal([]byte(src), &spec))

	assert.Equal(t, "Sequence", spec.Type)
	require.Len(t, spec.Children, 1)
	limiter := spec.Children[0]
	assert.Equal(t, 2, limiter.Params["count"])
	require.Len(t, limiter.Children, 1)
	assert.Equal(t, "move", limiter.Children[0].Params["command"])
	assert.Equal(t, 1.5, limiter.Children[0].Params["speed"])
}

func TestSpec_MarshalJSON_Flat(t *testing.T) {
	spec := domain.Spec{
		Type:   "Limiter",
		Label:  "once",
		Params: map[string]any{"count": 1},
	}

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Limiter", raw["type"])
	assert.Equal(t, "once", raw["label"])
	assert.Equal(t, float64(1), raw["count"])
	assert.Equal(t, []any{}, raw["children"])
}

func TestSpec_JSONRoundTrip(t *testing.T) {
	var first domain.Spec
	require.NoError(t, json.Unmarshal([]byte(selectJSON), &first))

	data, err := json.Marshal(first)
	require.NoError(t, err)

	var second domain.Spec
	require.NoError(t, json.Unmarshal(data, &second))
	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.Children[0].Params, second.Children[0].Params)
	assert.Equal(t, first.Children[1].Params, second.Children[1].Params)
}

func TestIsReservedKey(t *testing.T) {
	assert.True(t, domain.IsReservedKey("type"))
	assert.True(t, domain.IsReservedKey("label"))
	assert.True(t, domain.IsReservedKey("children"))
	assert.False(t, domain.IsReservedKey("key"))
}

func TestDecodeSpec_ReservedKeysAreCaseSensitive(t *testing.T) {
	spec, err := domain.DecodeSpec(map[string]any{
		"type":     "Command",
		"command":  "say",
		"Label":    "hello",
		"TYPE":     "shout",
		"Children": 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Command", spec.Type)
	assert.Empty(t, spec.Label)
	assert.Empty(t, spec.Children)
	assert.Equal(t, map[string]any{
		"command":  "say",
		"Label":    "hello",
		"TYPE":     "shout",
		"Children": 2,
	}, spec.Params)

	var nested domain.Spec
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Sequence","children":[{"type":"DebugPrint","Message":"hi","Label":"x"}]}`), &nested))
	require.Len(t, nested.Children, 1)
	assert.Empty(t, nested.Children[0].Label)
	assert.Equal(t, map[string]any{"Message": "hi", "Label": "x"}, nested.Children[0].Params)
}
