package leaf

import (
	"math/rand"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// RandomChance succeeds with probability "chance".
type RandomChance struct {
	node.Base
}

func NewRandomChance() *RandomChance {
	return &RandomChance{Base: node.NewBase(node.Leaf, map[string]any{"chance": 0.5})}
}

func (*RandomChance) Type() string { return TypeRandomChance }

func (n *RandomChance) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	if rand.Float64() < n.ParamFloat("chance", 0.5, bb) {
		return domain.Success
	}
	return domain.Failure
}

// RandomFloat writes a uniform value in [min, max) to the local "key".
type RandomFloat struct {
	node.Base
}

func NewRandomFloat() *RandomFloat {
	return &RandomFloat{Base: node.NewBase(node.Leaf, map[string]any{
		"min": 0.0,
		"max": 1.0,
		"key": "random",
	})}
}

func (*RandomFloat) Type() string { return TypeRandomFloat }

func (n *RandomFloat) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	lo := n.ParamFloat("min", 0, bb)
	hi := n.ParamFloat("max", 1, bb)
	key := n.ParamString("key", "random", bb)
	if key == "" || hi < lo {
		return domain.Failure
	}
	bb.SetLocal(key, lo+rand.Float64()*(hi-lo))
	return domain.Success
}
