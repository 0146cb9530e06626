package leaf

import (
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// Commander is implemented by actors that carry out named commands.
// args holds the node's remaining parameters, already resolved.
type Commander interface {
	Command(name string, args map[string]any) domain.Status
}

// Sensor is implemented by actors that answer boolean queries about the world.
type Sensor interface {
	Sense(query string) bool
}

// Command forwards "command" and its resolved parameters to a Commander actor.
type Command struct {
	node.Base
}

func NewCommand() *Command {
	return &Command{Base: node.NewBase(node.Leaf, map[string]any{"command": ""})}
}

func (*Command) Type() string { return TypeCommand }

func (n *Command) Tick(actor node.Actor, bb *blackboard.Blackboard) domain.Status {
	commander, ok := actor.(Commander)
	if !ok {
		return domain.Failure
	}
	name := n.ParamString("command", "", bb)
	if name == "" {
		return domain.Failure
	}
	args := make(map[string]any, len(n.Params()))
	for k := range n.Params() {
		if k == "command" {
			continue
		}
		args[k] = n.GetParam(k, nil, bb)
	}
	return commander.Command(name, args)
}

// Sense asks a Sensor actor about "query".
type Sense struct {
	node.Base
}

func NewSense() *Sense {
	return &Sense{Base: node.NewBase(node.Leaf, map[string]any{"query": ""})}
}

func (*Sense) Type() string { return TypeSense }

func (n *Sense) Tick(actor node.Actor, bb *blackboard.Blackboard) domain.Status {
	sensor, ok := actor.(Sensor)
	if !ok {
		return domain.Failure
	}
	if sensor.Sense(n.ParamString("query", "", bb)) {
		return domain.Success
	}
	return domain.Failure
}
