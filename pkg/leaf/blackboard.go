package leaf

import (
	"fmt"
	"reflect"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// BlackboardHas succeeds when "key" is present in "scope".
type BlackboardHas struct {
	node.Base
}

func NewBlackboardHas() *BlackboardHas {
	return &BlackboardHas{Base: node.NewBase(node.Leaf, map[string]any{
		"key":   "",
		"scope": ScopeAny,
	})}
}

func (*BlackboardHas) Type() string { return TypeBlackboardHas }

func (n *BlackboardHas) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	key := n.ParamString("key", "", bb)
	if key == "" {
		return domain.Failure
	}
	var found bool
	switch n.ParamString("scope", ScopeAny, bb) {
	case ScopeLocal:
		found = bb.HasLocal(key)
	case ScopeGlobal:
		found = bb.HasGlobal(key)
	case ScopeAny:
		found = bb.HasLocal(key) || bb.HasGlobal(key)
	}
	if found {
		return domain.Success
	}
	return domain.Failure
}

// BlackboardSet writes the resolved "value" under "key".
type BlackboardSet struct {
	node.Base
}

func NewBlackboardSet() *BlackboardSet {
	return &BlackboardSet{Base: node.NewBase(node.Leaf, map[string]any{
		"key":   "",
		"value": nil,
		"scope": ScopeLocal,
	})}
}

func (*BlackboardSet) Type() string { return TypeBlackboardSet }

func (n *BlackboardSet) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	key := n.ParamString("key", "", bb)
	if key == "" {
		return domain.Failure
	}
	value := n.GetParam("value", nil, bb)
	switch n.ParamString("scope", ScopeLocal, bb) {
	case ScopeLocal:
		bb.SetLocal(key, value)
	case ScopeGlobal:
		bb.SetGlobal(key, value)
	default:
		return domain.Failure
	}
	return domain.Success
}

// BlackboardErase removes "key" from the local scope.
type BlackboardErase struct {
	node.Base
}

func NewBlackboardErase() *BlackboardErase {
	return &BlackboardErase{Base: node.NewBase(node.Leaf, map[string]any{"key": ""})}
}

func (*BlackboardErase) Type() string { return TypeBlackboardErase }

func (n *BlackboardErase) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	bb.DeleteLocal(n.ParamString("key", "", bb))
	return domain.Success
}

// Comparison operators understood by BlackboardCompare.
const (
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpGreaterEqual = ">="
)

// BlackboardCompare compares the value stored under "key" with "value".
// Numbers compare numerically; everything else compares by text.
type BlackboardCompare struct {
	node.Base
}

func NewBlackboardCompare() *BlackboardCompare {
	return &BlackboardCompare{Base: node.NewBase(node.Leaf, map[string]any{
		"key":   "",
		"op":    OpEqual,
		"value": nil,
	})}
}

func (*BlackboardCompare) Type() string { return TypeBlackboardCompare }

func (n *BlackboardCompare) Tick(_ node.Actor, bb *blackboard.Blackboard) domain.Status {
	stored, ok := bb.Lookup(n.ParamString("key", "", bb))
	if !ok {
		return domain.Failure
	}
	ok, err := compare(stored, n.ParamString("op", OpEqual, bb), n.GetParam("value", nil, bb))
	if err != nil {
		return domain.Error
	}
	if ok {
		return domain.Success
	}
	return domain.Failure
}

func compare(left any, op string, right any) (bool, error) {
	if l, lok := domain.ToFloat(left); lok {
		if r, rok := domain.ToFloat(right); rok {
			return compareOrdered(l, op, r)
		}
	}
	ls, lok := domain.ToString(left)
	rs, rok := domain.ToString(right)
	if lok && rok {
		return compareOrdered(ls, op, rs)
	}
	switch op {
	case OpEqual:
		return reflect.DeepEqual(left, right), nil
	case OpNotEqual:
		return !reflect.DeepEqual(left, right), nil
	default:
		return false, fmt.Errorf("operator %q needs comparable operands, got %T and %T", op, left, right)
	}
}

func compareOrdered[T float64 | string](l T, op string, r T) (bool, error) {
	switch op {
	case OpEqual:
		return l == r, nil
	case OpNotEqual:
		return l != r, nil
	case OpLess:
		return l < r, nil
	case OpLessEqual:
		return l <= r, nil
	case OpGreater:
		return l > r, nil
	case OpGreaterEqual:
		return l >= r, nil
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}
