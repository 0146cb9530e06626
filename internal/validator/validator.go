package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
)

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a tree spec. Path addresses the node as
// "<tree>/<child index>/...".
type Issue struct {
	Path     string
	Type     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s): %s", i.Severity, i.Path, i.Type, i.Message)
}

// Inspect walks spec and reports every problem the builder would hit or
// silently work around.
func Inspect(reg *registry.Registry, name string, spec domain.Spec) []Issue {
	var issues []Issue
	inspect(reg, name, spec, &issues)
	return issues
}

func inspect(reg *registry.Registry, path string, spec domain.Spec, issues *[]Issue) {
	add := func(sev Severity, format string, args ...any) {
		*issues = append(*issues, Issue{Path: path, Type: spec.Type, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if spec.Type == "" {
		add(SeverityError, "missing type")
		return
	}
	n, err := reg.Create(spec.Type)
	if err != nil {
		add(SeverityError, "unknown node type, the subtree will be dropped")
		return
	}

	limit := n.MaxChildren()
	switch {
	case limit == node.Leaf && len(spec.Children) > 0:
		add(SeverityWarning, "leaf node has %d children", len(spec.Children))
	case limit != node.Unbounded && len(spec.Children) > limit:
		add(SeverityWarning, "accepts at most %d children, got %d", limit, len(spec.Children))
	case limit != node.Leaf && len(spec.Children) == 0:
		add(SeverityWarning, "no children, node will always fail")
	}

	if err := schema.CheckParams(schema.Infer(n.Params()), spec.Params); err != nil {
		for _, e := range schema.ValidationErrors(err) {
			add(SeverityError, "%s", e.Error())
		}
	}

	for i, child := range spec.Children {
		inspect(reg, path+"/"+strconv.Itoa(i), child, issues)
	}
}

// ValidateSpec fails when Inspect finds any error-level issue.
// Warnings never fail validation.
func ValidateSpec(reg *registry.Registry, name string, spec domain.Spec) error {
	var errs []string
	for _, issue := range Inspect(reg, name, spec) {
		if issue.Severity == SeverityError {
			errs = append(errs, issue.String())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
