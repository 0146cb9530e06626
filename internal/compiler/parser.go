package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/pkg/domain"
)

// ErrMissingType is returned when a document has no top-level node type.
var ErrMissingType = errors.New("tree spec missing type")

// Parser is responsible for converting raw bytes into a tree spec.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a JSON or YAML document into a Spec.
// Documents starting with '{' are read as JSON, everything else as YAML.
func (p *Parser) Parse(data []byte) (domain.Spec, error) {
	var spec domain.Spec
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.Spec{}, fmt.Errorf("failed to parse tree: empty document")
	}

	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &spec); err != nil {
			return domain.Spec{}, fmt.Errorf("failed to parse tree as JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &spec); err != nil {
			return domain.Spec{}, fmt.Errorf("failed to parse tree as YAML: %w", err)
		}
	}

	if spec.Type == "" {
		return domain.Spec{}, ErrMissingType
	}
	return spec, nil
}
