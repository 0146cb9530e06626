package leaf

import (
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// Operations understood by VectorMath.
const (
	VecAdd       = "add"
	VecSub       = "sub"
	VecScale     = "scale"
	VecNormalize = "normalize"
	VecLength    = "length"
	VecDistance  = "distance"
)

// VectorMath computes over the vectors "a" and "b" and stores the result
// under the local "key". Operands are usually "$key" references.
type VectorMath struct {
	node.Base
}

func NewVectorMath() *VectorMath {
	return &VectorMath{Base: node.NewBase(node.Leaf, map[string]any{
		"op":     VecAdd,
		"a":      nil,
		"b":      nil,
		"scalar": 1.0,
		"key":    "result",
	})}
}

func (*VectorMath) Type() string { return TypeVectorMath }

func (n *VectorMath) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	key := n.ParamString("key", "result", bb)
	a, ok := domain.ToVector(n.GetParam("a", nil, bb))
	if !ok || key == "" {
		return domain.Failure
	}
	operand := func() (domain.Vector, bool) {
		return domain.ToVector(n.GetParam("b", nil, bb))
	}

	var result any
	switch n.ParamString("op", VecAdd, bb) {
	case VecAdd:
		b, ok := operand()
		if !ok {
			return domain.Failure
		}
		result = a.Add(b)
	case VecSub:
		b, ok := operand()
		if !ok {
			return domain.Failure
		}
		result = a.Sub(b)
	case VecDistance:
		b, ok := operand()
		if !ok {
			return domain.Failure
		}
		result = a.Distance(b)
	case VecScale:
		result = a.Scale(n.ParamFloat("scalar", 1, bb))
	case VecNormalize:
		result = a.Normalized()
	case VecLength:
		result = a.Length()
	default:
		return domain.Error
	}
	bb.SetLocal(key, result)
	return domain.Success
}
