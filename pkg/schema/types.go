package schema

import (
	"fmt"
	"reflect"

	"github.com/aretw0/arbor/pkg/domain"
)

// Type defines the contract for parameter validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type scalarType struct {
	name   string
	accept func(any) bool
}

func (t *scalarType) Name() string { return t.name }

func (t *scalarType) Validate(value any) error {
	if !t.accept(value) {
		return fmt.Errorf("expected %s, got %T", t.name, value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

var (
	stringType = &scalarType{name: "string", accept: func(v any) bool {
		_, ok := domain.ToString(v)
		return ok
	}}
	intType = &scalarType{name: "int", accept: func(v any) bool {
		f, ok := domain.ToFloat(v)
		return ok && f == float64(int64(f))
	}}
	floatType = &scalarType{name: "float", accept: func(v any) bool {
		_, ok := domain.ToFloat(v)
		return ok
	}}
	boolType = &scalarType{name: "bool", accept: func(v any) bool {
		_, ok := domain.ToBool(v)
		return ok
	}}
	vectorType = &scalarType{name: "vector", accept: func(v any) bool {
		_, ok := domain.ToVector(v)
		return ok
	}}
	anyType = &scalarType{name: "any", accept: func(any) bool { return true }}
)

// String accepts any scalar that renders as text.
func String() Type { return stringType }

// Int accepts whole numbers, including whole floats decoded from JSON.
func Int() Type { return intType }

// Float accepts any number.
func Float() Type { return floatType }

// Bool accepts booleans and their string forms.
func Bool() Type { return boolType }

// Vector accepts vectors, {x,y,z} maps and 2 or 3 element lists.
func Vector() Type { return vectorType }

// Any accepts every value.
func Any() Type { return anyType }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// Of returns the type a default value implies.
func Of(value any) Type {
	switch value.(type) {
	case bool:
		return Bool()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int()
	case float32, float64:
		return Float()
	case string:
		return String()
	case domain.Vector, *domain.Vector:
		return Vector()
	default:
		return Any()
	}
}

// ParseType converts a type name to a Type.
// Supports "string", "int", "float", "bool", "vector", "any" and "[elem]".
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "vector":
		return Vector(), nil
	case "any":
		return Any(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}
