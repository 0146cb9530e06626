package domain

import (
	"math"

	"github.com/mitchellh/mapstructure"
)

// Vector is a three component spatial value. Two dimensional users leave Z at zero.
type Vector struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
	Z float64 `json:"z" yaml:"z" mapstructure:"z"`
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f, v.Z * f} }

func (v Vector) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func (v Vector) Distance(o Vector) float64 { return v.Sub(o).Length() }

// Normalized returns the unit vector, or the zero vector when the length is zero.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// ToVector coerces a Vector, a map with x/y/z keys, or a 2 or 3 element numeric list.
func ToVector(v any) (Vector, bool) {
	switch t := v.(type) {
	case Vector:
		return t, true
	case *Vector:
		if t == nil {
			return Vector{}, false
		}
		return *t, true
	case map[string]any:
		return vectorFromMap(t)
	case []any:
		if len(t) < 2 || len(t) > 3 {
			return Vector{}, false
		}
		var comps [3]float64
		for i, raw := range t {
			f, ok := ToFloat(raw)
			if !ok {
				return Vector{}, false
			}
			comps[i] = f
		}
		return Vector{comps[0], comps[1], comps[2]}, true
	case []float64:
		if len(t) < 2 || len(t) > 3 {
			return Vector{}, false
		}
		var comps [3]float64
		copy(comps[:], t)
		return Vector{comps[0], comps[1], comps[2]}, true
	default:
		return Vector{}, false
	}
}

// vectorFromMap decodes x/y/z keys. Values must already be numbers and at
// least one component must be present.
func vectorFromMap(m map[string]any) (Vector, bool) {
	var out Vector
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    &out,
		Metadata:  &md,
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return Vector{}, false
	}
	if err := dec.Decode(m); err != nil {
		return Vector{}, false
	}
	return out, len(md.Keys) > 0
}
