package schema

import (
	"strings"

	"github.com/m4gshm/gollections/slice"
)

// Kind classifies a declared field type.
type Kind int

const (
	KindAny Kind = iota
	KindNull
	KindScalar
	KindObject
	KindList
	KindMap
	KindUnion
	KindStatic
	KindExcluded
)

// Type is a declared field type tag.
type Type struct {
	kind   Kind
	name   string
	elem   *Type
	alts   []*Type
	schema *Schema
}

var (
	Any    = &Type{kind: KindAny, name: "any"}
	Null   = &Type{kind: KindNull, name: "null"}
	Int    = Scalar("int")
	Float  = Scalar("float")
	String = Scalar("string")
	Bool   = Scalar("bool")
	// List is a list without declared element type.
	List = &Type{kind: KindList, name: "list"}
	// Map is a raw mapping, never coerced to an object.
	Map = &Type{kind: KindMap, name: "map"}
)

func Scalar(name string) *Type {
	return &Type{kind: KindScalar, name: name}
}

// ObjectOf declares a nested object of the schema.
func ObjectOf(s *Schema) *Type {
	return &Type{kind: KindObject, schema: s}
}

func ListOf(elem *Type) *Type {
	return &Type{kind: KindList, name: "list", elem: elem}
}

func UnionOf(alts ...*Type) *Type {
	return &Type{kind: KindUnion, alts: alts}
}

func OptionalOf(t *Type) *Type {
	return UnionOf(t, Null)
}

// StaticOf marks a class-scoped constant that is never stored in the mapping.
func StaticOf(t *Type) *Type {
	return &Type{kind: KindStatic, elem: t}
}

// ExcludedOf marks an object-scoped attribute that is never stored in the mapping.
func ExcludedOf(t *Type) *Type {
	return &Type{kind: KindExcluded, elem: t}
}

func (t *Type) Kind() Kind {
	if t == nil {
		return KindAny
	}
	return t.kind
}

func (t *Type) Elem() *Type { return t.elem }
func (t *Type) Alternatives() []*Type { return t.alts }
func (t *Type) Schema() *Schema { return t.schema }

// NonNull returns the alternatives of a union excluding null.
func (t *Type) NonNull() []*Type {
	return slice.Filter(t.alts, func(a *Type) bool { return a.Kind() != KindNull })
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case KindObject:
		if t.schema == nil {
			return "object"
		}
		return t.schema.Name()
	case KindList:
		if t.elem == nil {
			return "list"
		}
		return "list[" + t.elem.String() + "]"
	case KindUnion:
		return "union[" + strings.Join(slice.Convert(t.alts, (*Type).String), ", ") + "]"
	case KindStatic:
		return "static[" + t.elem.String() + "]"
	case KindExcluded:
		return "excluded[" + t.elem.String() + "]"
	default:
		return t.name
	}
}
