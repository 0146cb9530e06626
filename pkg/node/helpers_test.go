package node_test

import (
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// probe is a scripted leaf. It returns its statuses in order, repeating the
// last one, and appends its label to a shared call log.
type probe struct {
	node.Base
	statuses []domain.Status
	calls    int
	log      *[]string
}

func newProbe(label string, log *[]string, statuses ...domain.Status) *probe {
	p := &probe{Base: node.NewBase(node.Leaf, nil), statuses: statuses, log: log}
	p.SetLabel(label)
	return p
}

func (*probe) Type() string { return "Probe" }

func (p *probe) Tick(_ node.Actor, _ *blackboard.Blackboard) domain.Status {
	i := p.calls
	if i >= len(p.statuses) {
		i = len(p.statuses) - 1
	}
	p.calls++
	if p.log != nil {
		*p.log = append(*p.log, p.Label())
	}
	return p.statuses[i]
}

func (p *probe) LoadDebugValues(bb *blackboard.Blackboard) {
	bb.SetLocal(blackboard.DebugKey(p.Label(), "calls"), p.calls)
}

func withChildren[T node.Node](parent T, children ...node.Node) T {
	for _, c := range children {
		parent.AddChild(c)
	}
	return parent
}

func newBoard(delta float64) *blackboard.Blackboard {
	bb := blackboard.New(nil)
	bb.SetLocal(blackboard.DeltaKey, delta)
	return bb
}
