package node

import (
	"strings"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
)

// IndirectionPrefix marks a parameter value that names a blackboard key.
const IndirectionPrefix = "$"

// GetParam resolves a parameter.
//
// An absent key yields fallback. A "$key" string yields the local value of key,
// else the global value, else the literal "$key" string itself. Anything else
// is returned as stored.
func (b *Base) GetParam(key string, fallback any, bb *blackboard.Blackboard) any {
	v, ok := b.params[key]
	if !ok {
		return fallback
	}
	s, isString := v.(string)
	if !isString || !strings.HasPrefix(s, IndirectionPrefix) || bb == nil {
		return v
	}
	bbKey := strings.TrimPrefix(s, IndirectionPrefix)
	if bb.HasLocal(bbKey) {
		return bb.LocalOr(bbKey, nil)
	}
	if bb.HasGlobal(bbKey) {
		return bb.GlobalOr(bbKey, nil)
	}
	return v
}

// ParamFloat resolves a parameter as a number; non-numeric values yield fallback.
func (b *Base) ParamFloat(key string, fallback float64, bb *blackboard.Blackboard) float64 {
	if f, ok := domain.ToFloat(b.GetParam(key, fallback, bb)); ok {
		return f
	}
	return fallback
}

// ParamInt resolves a parameter as an integer; non-numeric values yield fallback.
func (b *Base) ParamInt(key string, fallback int, bb *blackboard.Blackboard) int {
	if i, ok := domain.ToInt(b.GetParam(key, fallback, bb)); ok {
		return i
	}
	return fallback
}

// ParamBool resolves a parameter as a boolean.
func (b *Base) ParamBool(key string, fallback bool, bb *blackboard.Blackboard) bool {
	if v, ok := domain.ToBool(b.GetParam(key, fallback, bb)); ok {
		return v
	}
	return fallback
}

// ParamString resolves a parameter as text. An unresolved "$key" comes back as is.
func (b *Base) ParamString(key string, fallback string, bb *blackboard.Blackboard) string {
	if s, ok := domain.ToString(b.GetParam(key, fallback, bb)); ok {
		return s
	}
	return fallback
}

// ParamVector resolves a parameter as a vector.
func (b *Base) ParamVector(key string, fallback domain.Vector, bb *blackboard.Blackboard) domain.Vector {
	if v, ok := domain.ToVector(b.GetParam(key, fallback, bb)); ok {
		return v
	}
	return fallback
}
