package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

func guard() domain.Spec {
	return domain.Spec{
		Type:  "Select",
		Label: "root",
		Children: []domain.Spec{
			{Type: "BlackboardHas", Params: map[string]any{"key": "target"}},
			{Type: "Inverter", Children: []domain.Spec{
				{Type: "BlackboardCompare", Label: "near", Params: map[string]any{"op": "<", "a": "$dist", "b": 3}},
			}},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	reg := registry.NewDefault(logging.NewNop())

	tests := []struct {
		name     string
		reg      *registry.Registry
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name: "Category Shapes",
			reg:  reg,
			contains: []string{
				`n{{"root <br/> <i>Select</i>"}}`,
				`n_1(["Inverter"])`,
				`n_0["BlackboardHas <br/> key=target"]`,
			},
		},
		{
			name: "Ordered Edges",
			reg:  reg,
			contains: []string{
				`n -- "1" --> n_0`,
				`n -- "2" --> n_1`,
				`n_1 -- "1" --> n_1_0`,
			},
		},
		{
			name: "Label Escaping",
			reg:  reg,
			contains: []string{
				`a=$dist, b=3, op=&lt;`,
			},
		},
		{
			name: "Guessed Categories Without Registry",
			contains: []string{
				`n{{"root`,
				`n_1(["Inverter"])`,
			},
		},
		{
			name: "Status Overlay",
			reg:  reg,
			overlay: &graph.Overlay{Status: map[string]domain.Status{
				"root": domain.Running,
				"near": domain.Failure,
			}},
			contains: []string{
				"classDef running",
				"class n running;",
				"class n_1_0 failure;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(guard(), tt.reg, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}
