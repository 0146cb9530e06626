package leaf

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// conditionEnv is the environment expressions are evaluated against.
type conditionEnv struct {
	Local map[string]any        `expr:"local"`
	Actor any                   `expr:"actor"`
	Get   func(key string) any  `expr:"Get"`
	Has   func(key string) bool `expr:"Has"`
}

func newConditionEnv(actor node.Actor, bb *blackboard.Blackboard) conditionEnv {
	return conditionEnv{
		Local: bb.LocalSnapshot(),
		Actor: actor,
		Get: func(key string) any {
			v, _ := bb.Lookup(key)
			return v
		},
		Has: func(key string) bool {
			_, ok := bb.Lookup(key)
			return ok
		},
	}
}

// Condition evaluates a boolean expr-lang "expression", for example
// `local.hp < 20 && Has("enemy")`. The program is compiled on first tick
// and kept until the expression changes.
type Condition struct {
	node.Base
	logger     *slog.Logger
	source     string
	program    *vm.Program
	compileErr error
}

// NewCondition creates a Condition reporting evaluation errors to logger,
// or slog.Default when nil.
func NewCondition(logger *slog.Logger) *Condition {
	if logger == nil {
		logger = slog.Default()
	}
	return &Condition{
		Base:   node.NewBase(node.Leaf, map[string]any{"expression": ""}),
		logger: logger,
	}
}

func (*Condition) Type() string { return TypeCondition }

func (n *Condition) compile(source string) (*vm.Program, error) {
	if n.source == source && (n.program != nil || n.compileErr != nil) {
		return n.program, n.compileErr
	}
	n.source = source
	n.program, n.compileErr = expr.Compile(source, expr.Env(conditionEnv{}), expr.AsBool())
	return n.program, n.compileErr
}

func (n *Condition) Tick(actor node.Actor, bb *blackboard.Blackboard) domain.Status {
	source := n.ParamString("expression", "", bb)
	if source == "" {
		return domain.Failure
	}
	program, err := n.compile(source)
	if err != nil {
		n.logger.Warn("condition does not compile", "node", n.Label(), "expression", source, "error", err)
		return domain.Error
	}
	out, err := expr.Run(program, newConditionEnv(actor, bb))
	if err != nil {
		n.logger.Warn("condition failed", "node", n.Label(), "expression", source, "error", err)
		return domain.Error
	}
	if ok, _ := out.(bool); ok {
		return domain.Success
	}
	return domain.Failure
}
