package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/registry"
)

// openTree resolves path into an engine over its directory and a tree name.
func openTree(path string) (*arbor.Engine, string, error) {
	dir, name, err := resolveTree(path)
	if err != nil {
		return nil, "", err
	}
	engine, err := arbor.New(dir)
	if err != nil {
		return nil, "", fmt.Errorf("error initializing arbor: %w", err)
	}
	return engine, name, nil
}

// Validate checks the tree at path. Warnings are printed, errors fail.
func Validate(ctx context.Context, path string, out io.Writer) error {
	engine, name, err := openTree(path)
	if err != nil {
		return err
	}
	spec, err := engine.Spec(ctx, name)
	if err != nil {
		return err
	}

	for _, issue := range validator.Inspect(engine.Registry(), name, spec) {
		if issue.Severity == validator.SeverityWarning {
			fmt.Fprintln(out, issue.String())
		}
	}
	return validator.ValidateSpec(engine.Registry(), name, spec)
}

// Graph writes the Mermaid diagram of the tree at path.
func Graph(ctx context.Context, path string, out io.Writer) error {
	engine, name, err := openTree(path)
	if err != nil {
		return err
	}
	spec, err := engine.Spec(ctx, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, graph.GenerateMermaid(spec, engine.Registry(), nil))
	return err
}

// Nodes prints the catalog of built-in node types, as JSON or rendered markdown.
func Nodes(out io.Writer, asJSON bool) error {
	descs := registry.NewDefault(nil).Describe()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descs)
	}
	render := tui.NewRenderer(!tui.IsTerminal(out))
	text, err := render(tui.CatalogMarkdown(descs))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, text)
	return err
}
