package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/registry"
)

// CatalogMarkdown describes the registered node types grouped by category.
func CatalogMarkdown(descs []registry.Descriptor) string {
	var sb strings.Builder
	sb.WriteString("# Node Types\n")

	for _, category := range []string{registry.CategoryComposite, registry.CategoryDecorator, registry.CategoryLeaf} {
		var rows []registry.Descriptor
		for _, d := range descs {
			if d.Category == category {
				rows = append(rows, d)
			}
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n## %s\n\n", strings.ToUpper(category[:1])+category[1:]+"s")
		sb.WriteString("| Type | Children | Parameters |\n|---|---|---|\n")
		for _, d := range rows {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", d.Type, children(d.MaxChildren), params(d.Defaults))
		}
	}
	return sb.String()
}

func children(limit int) string {
	switch limit {
	case -1:
		return "any"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("%d", limit)
	}
}

func params(defaults map[string]any) string {
	if len(defaults) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("`%s=%v`", k, defaults[k]))
	}
	return strings.Join(parts, " ")
}
