package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Reserved keys of the declarative node shape. Every other key is a parameter.
const (
	KeyType     = "type"
	KeyLabel    = "label"
	KeyChildren = "children"
)

// Spec is the declarative shape of a node:
//
//	{"type": "Select", "label": "root", "children": [...], "<param>": <value>}
//
// The same flat shape is used for JSON and YAML.
type Spec struct {
	Type     string         `mapstructure:"type"`
	Label    string         `mapstructure:"label"`
	Children []Spec         `mapstructure:"children"`
	Params   map[string]any `mapstructure:",remain"`
}

// IsReservedKey reports whether key is part of the node shape rather than a parameter.
func IsReservedKey(key string) bool {
	return key == KeyType || key == KeyLabel || key == KeyChildren
}

// DecodeSpec converts a generic map (as produced by JSON or YAML decoders) into a Spec.
func DecodeSpec(raw map[string]any) (Spec, error) {
	var spec Spec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
		// Only the exact lowercase keys are reserved; "Label" is a parameter.
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return Spec{}, fmt.Errorf("failed to create spec decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Spec{}, fmt.Errorf("failed to decode spec: %w", err)
	}
	return spec, nil
}

// Map returns the flat representation of the spec, children included.
func (s Spec) Map() map[string]any {
	out := make(map[string]any, len(s.Params)+3)
	for k, v := range s.Params {
		out[k] = v
	}
	out[KeyType] = s.Type
	out[KeyLabel] = s.Label
	children := make([]any, 0, len(s.Children))
	for _, c := range s.Children {
		children = append(children, c.Map())
	}
	out[KeyChildren] = children
	return out
}

// Count returns the number of nodes in the spec, itself included.
func (s Spec) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// MarshalJSON encodes the spec in its flat form.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes the flat form.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := DecodeSpec(raw)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// MarshalYAML encodes the spec in its flat form.
func (s Spec) MarshalYAML() (any, error) {
	return s.Map(), nil
}

// UnmarshalYAML decodes the flat form.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	decoded, err := DecodeSpec(raw)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
