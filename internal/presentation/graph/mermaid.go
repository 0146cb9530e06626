package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Overlay contains runtime state to visualize on the graph, keyed by node label.
type Overlay struct {
	Status map[string]domain.Status
}

// GenerateMermaid produces a Mermaid flowchart of a tree spec.
// It applies semantic styling by category:
// - Composite: {{Hexagon}}
// - Decorator: ([Stadium])
// - Leaf: [Rectangle]
// Parameters are listed under the label. Edges are numbered in tick order.
// If reg is nil, the category is guessed from the number of children.
func GenerateMermaid(spec domain.Spec, reg *registry.Registry, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := map[string][]string{}
	writeNode(&sb, spec, "n", reg, ids)

	if overlay != nil && len(overlay.Status) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef success fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failure fill:#ffcdd2,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef running fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef error fill:#e1bee7,stroke:#6a1b9a,stroke-width:2px,color:#000;\n")

		labels := make([]string, 0, len(overlay.Status))
		for label := range overlay.Status {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			class := strings.ToLower(overlay.Status[label].String())
			for _, id := range ids[label] {
				sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
			}
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, spec domain.Spec, id string, reg *registry.Registry, ids map[string][]string) {
	label := spec.Label
	if label == "" {
		label = spec.Type
	}
	ids[label] = append(ids[label], id)

	opener, closer := "[", "]"
	switch category(spec, reg) {
	case registry.CategoryComposite:
		opener, closer = "{{", "}}"
	case registry.CategoryDecorator:
		opener, closer = "([", "])"
	}

	text := escape(label)
	if label != spec.Type {
		text += " <br/> <i>" + escape(spec.Type) + "</i>"
	}
	if params := formatParams(spec.Params); params != "" {
		text += " <br/> " + params
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, text, closer))

	for i, child := range spec.Children {
		childID := id + "_" + strconv.Itoa(i)
		writeNode(sb, child, childID, reg, ids)
		sb.WriteString(fmt.Sprintf("    %s -- \"%d\" --> %s\n", id, i+1, childID))
	}
}

func category(spec domain.Spec, reg *registry.Registry) string {
	if reg != nil {
		if n, err := reg.Create(spec.Type); err == nil {
			return registry.Category(n)
		}
	}
	switch len(spec.Children) {
	case 0:
		return registry.CategoryLeaf
	case 1:
		return registry.CategoryDecorator
	default:
		return registry.CategoryComposite
	}
}

func formatParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, escape(fmt.Sprintf("%s=%v", k, params[k])))
	}
	return strings.Join(parts, ", ")
}

// escape makes text safe inside a quoted Mermaid label.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
