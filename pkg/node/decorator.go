package node

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
)

// delta reads the host-provided frame time. It is required input, so the
// assuming accessor is used.
func delta(bb *blackboard.Blackboard) (float64, error) {
	v, err := bb.Local(blackboard.DeltaKey)
	if err != nil {
		return 0, err
	}
	f, ok := domain.ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s is %T, not a number", blackboard.DeltaKey, v)
	}
	return f, nil
}

// Inverter swaps success and failure. Running passes through; anything else is an error.
type Inverter struct {
	Base
}

func NewInverter() *Inverter {
	return &Inverter{Base: NewBase(Single, nil)}
}

func (*Inverter) Type() string { return TypeInverter }

func (n *Inverter) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	switch child.Tick(actor, bb) {
	case domain.Success:
		return domain.Failure
	case domain.Failure:
		return domain.Success
	case domain.Running:
		return domain.Running
	default:
		return domain.Error
	}
}

// Succeeder ticks its child and always succeeds.
type Succeeder struct {
	Base
}

func NewSucceeder() *Succeeder {
	return &Succeeder{Base: NewBase(Single, nil)}
}

func (*Succeeder) Type() string { return TypeSucceeder }

func (n *Succeeder) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	child.Tick(actor, bb)
	return domain.Success
}

// Failer ticks its child and always fails.
type Failer struct {
	Base
}

func NewFailer() *Failer {
	return &Failer{Base: NewBase(Single, nil)}
}

func (*Failer) Type() string { return TypeFailer }

func (n *Failer) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	child.Tick(actor, bb)
	return domain.Failure
}

// Limiter allows up to "count" completed runs of its child, then fails
// without ticking it. Running results do not consume the budget.
type Limiter struct {
	Base
	remaining int
	started   bool
}

func NewLimiter() *Limiter {
	return &Limiter{Base: NewBase(Single, map[string]any{"count": 1})}
}

func (*Limiter) Type() string { return TypeLimiter }

// Remaining returns the number of completed runs left.
func (n *Limiter) Remaining() int { return n.remaining }

func (n *Limiter) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	if !n.started {
		n.remaining = n.ParamInt("count", 1, bb)
		n.started = true
	}
	if n.remaining <= 0 {
		return domain.Failure
	}
	status := child.Tick(actor, bb)
	if status != domain.Running {
		n.remaining--
	}
	return status
}

func (n *Limiter) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(n.Label(), "remaining"), n.remaining)
}

// TimeLimiter lets its child run while a countdown of "seconds", driven by
// the local delta, is positive. Once the child completes the countdown is
// depleted for good and the node fails from then on.
type TimeLimiter struct {
	Base
	remaining float64
	started   bool
}

func NewTimeLimiter() *TimeLimiter {
	return &TimeLimiter{Base: NewBase(Single, map[string]any{"seconds": 1.0})}
}

func (*TimeLimiter) Type() string { return TypeTimeLimiter }

// Remaining returns the time left on the countdown.
func (n *TimeLimiter) Remaining() float64 { return n.remaining }

func (n *TimeLimiter) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	if !n.started {
		n.remaining = n.ParamFloat("seconds", 1, bb)
		n.started = true
	}
	if n.remaining <= 0 {
		return domain.Failure
	}
	dt, err := delta(bb)
	if err != nil {
		return domain.Error
	}
	n.remaining -= dt
	if n.remaining <= 0 {
		n.remaining = 0
		return domain.Failure
	}
	status := child.Tick(actor, bb)
	if status != domain.Running {
		n.remaining = 0
	}
	return status
}

func (n *TimeLimiter) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(n.Label(), "remaining"), n.remaining)
}

// ClockLimiter runs its child at most once per "seconds" interval. While the
// countdown is positive it succeeds without ticking the child. The "startat"
// parameter is accepted and serialized but not read.
type ClockLimiter struct {
	Base
	countdown float64
	started   bool
}

func NewClockLimiter() *ClockLimiter {
	return &ClockLimiter{Base: NewBase(Single, map[string]any{
		"seconds": 1.0,
		"startat": 0.0,
	})}
}

func (*ClockLimiter) Type() string { return TypeClockLimiter }

// Countdown returns the time left before the child runs again.
func (n *ClockLimiter) Countdown() float64 { return n.countdown }

func (n *ClockLimiter) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	if !n.started {
		n.countdown = n.ParamFloat("seconds", 1, bb)
		n.started = true
	}
	dt, err := delta(bb)
	if err != nil {
		return domain.Error
	}
	n.countdown -= dt
	if n.countdown > 0 {
		return domain.Success
	}
	status := child.Tick(actor, bb)
	if status != domain.Running {
		n.countdown = n.ParamFloat("seconds", 1, bb)
	}
	return status
}

func (n *ClockLimiter) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(n.Label(), "countdown"), n.countdown)
}

// Debug ticks its child, lets it publish debug values and records its status
// under "debug.<child label>:status".
type Debug struct {
	Base
}

func NewDebug() *Debug {
	return &Debug{Base: NewBase(Single, nil)}
}

func (*Debug) Type() string { return TypeDebug }

func (n *Debug) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	child, ok := n.Child(0)
	if !ok {
		return domain.Failure
	}
	status := child.Tick(actor, bb)
	if loader, ok := child.(DebugLoader); ok {
		loader.LoadDebugValues(bb)
	}
	bb.SetLocal(blackboard.DebugKey(child.Label(), "status"), status)
	return status
}
