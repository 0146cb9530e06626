package node

import (
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
)

const noRunningChild = -1

// Sequence ticks children left to right and returns the first non-success.
type Sequence struct {
	Base
}

func NewSequence() *Sequence {
	return &Sequence{Base: NewBase(Unbounded, nil)}
}

func (*Sequence) Type() string { return TypeSequence }

func (s *Sequence) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	if len(s.children) == 0 {
		return domain.Failure
	}
	for _, c := range s.children {
		if status := c.Tick(actor, bb); status != domain.Success {
			return status
		}
	}
	return domain.Success
}

// Select ticks children left to right and returns the first non-failure.
type Select struct {
	Base
}

func NewSelect() *Select {
	return &Select{Base: NewBase(Unbounded, nil)}
}

func (*Select) Type() string { return TypeSelect }

func (s *Select) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	if len(s.children) == 0 {
		return domain.Failure
	}
	for _, c := range s.children {
		if status := c.Tick(actor, bb); status != domain.Failure {
			return status
		}
	}
	return domain.Failure
}

// starMemory is the running-child bookkeeping shared by the stateful composites.
type starMemory struct {
	running int
}

// RunningIndex returns the remembered running child, or -1.
func (m *starMemory) RunningIndex() int { return m.running }

// resume re-invokes the first child while a running child is remembered.
// The remembered index itself is only used to decide whether to resume.
func (m *starMemory) resume(children []Node, actor Actor, bb *blackboard.Blackboard) domain.Status {
	status := children[0].Tick(actor, bb)
	if status != domain.Running {
		m.running = noRunningChild
	}
	return status
}

// SequenceStar is a Sequence that resumes a running child on the next tick
// instead of restarting the scan.
type SequenceStar struct {
	Base
	starMemory
}

func NewSequenceStar() *SequenceStar {
	return &SequenceStar{
		Base:       NewBase(Unbounded, nil),
		starMemory: starMemory{running: noRunningChild},
	}
}

func (*SequenceStar) Type() string { return TypeSequenceStar }

func (s *SequenceStar) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	if len(s.children) == 0 {
		return domain.Failure
	}
	if s.running != noRunningChild {
		return s.resume(s.children, actor, bb)
	}
	for i, c := range s.children {
		status := c.Tick(actor, bb)
		if status == domain.Running {
			s.running = i
		}
		if status != domain.Success {
			return status
		}
	}
	return domain.Success
}

func (s *SequenceStar) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(s.Label(), "running"), s.running)
}

// SelectStar shares the resume mechanics of SequenceStar. Its scan returns on
// the first result that is not a success and fails when every child succeeds.
type SelectStar struct {
	Base
	starMemory
}

func NewSelectStar() *SelectStar {
	return &SelectStar{
		Base:       NewBase(Unbounded, nil),
		starMemory: starMemory{running: noRunningChild},
	}
}

func (*SelectStar) Type() string { return TypeSelectStar }

func (s *SelectStar) Tick(actor Actor, bb *blackboard.Blackboard) domain.Status {
	if len(s.children) == 0 {
		return domain.Failure
	}
	if s.running != noRunningChild {
		return s.resume(s.children, actor, bb)
	}
	for i, c := range s.children {
		status := c.Tick(actor, bb)
		if status == domain.Running {
			s.running = i
		}
		if status != domain.Success {
			return status
		}
	}
	return domain.Failure
}

func (s *SelectStar) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(s.Label(), "running"), s.running)
}
