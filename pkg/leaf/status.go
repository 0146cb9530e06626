package leaf

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// DebugPrint logs "message" and succeeds.
type DebugPrint struct {
	node.Base
	logger *slog.Logger
	last   string
}

// NewDebugPrint creates a DebugPrint writing to logger, or slog.Default when nil.
func NewDebugPrint(logger *slog.Logger) *DebugPrint {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugPrint{
		Base:   node.NewBase(node.Leaf, map[string]any{"message": ""}),
		logger: logger,
	}
}

func (*DebugPrint) Type() string { return TypeDebugPrint }

func (n *DebugPrint) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	n.last = n.ParamString("message", "", bb)
	n.logger.Info(n.last, "node", n.Label())
	return domain.Success
}

func (n *DebugPrint) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(n.Label(), "message"), n.last)
}

// ReturnStatus returns the status named by "status".
type ReturnStatus struct {
	node.Base
}

func NewReturnStatus() *ReturnStatus {
	return &ReturnStatus{Base: node.NewBase(node.Leaf, map[string]any{
		"status": domain.Success.String(),
	})}
}

func (*ReturnStatus) Type() string { return TypeReturnStatus }

func (n *ReturnStatus) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	status, _ := domain.ParseStatus(n.ParamString("status", domain.Success.String(), bb))
	return status
}

// Wait stays running until "seconds" of delta time have accumulated, then
// succeeds once and starts over.
type Wait struct {
	node.Base
	elapsed float64
}

func NewWait() *Wait {
	return &Wait{Base: node.NewBase(node.Leaf, map[string]any{"seconds": 1.0})}
}

func (*Wait) Type() string { return TypeWait }

// Elapsed returns the time accumulated towards the current wait.
func (n *Wait) Elapsed() float64 { return n.elapsed }

func (n *Wait) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	v, err := bb.Local(blackboard.DeltaKey)
	if err != nil {
		return domain.Error
	}
	dt, ok := domain.ToFloat(v)
	if !ok {
		return domain.Error
	}
	n.elapsed += dt
	if n.elapsed < n.ParamFloat("seconds", 1, bb) {
		return domain.Running
	}
	n.elapsed = 0
	return domain.Success
}

func (n *Wait) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(n.Label(), "elapsed"), n.elapsed)
}
