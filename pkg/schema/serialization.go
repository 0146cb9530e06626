package schema

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes the schema as a map of parameter names to type names.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	raw := make(map[string]string, len(s))
	for key, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("param %s: type is nil", key)
		}
		raw[key] = typ.Name()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON deserializes the schema from a map of parameter names to type names.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := make(Schema, len(raw))
	for key, name := range raw {
		t, err := ParseType(name)
		if err != nil {
			return fmt.Errorf("param %s: %w", key, err)
		}
		parsed[key] = t
	}
	*s = parsed
	return nil
}
