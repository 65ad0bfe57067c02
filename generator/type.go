package generator

import "github.com/m4gshm/gollections/op"

type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeNull
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeMap
	TypeList
	TypeClass
)

// TypeRef is an inferred field type.
type TypeRef struct {
	Kind  TypeKind
	Class string
	Elem  *TypeRef
}

var scalars = map[TypeKind]string{
	TypeAny:    "Any",
	TypeNull:   "Null",
	TypeBool:   "Bool",
	TypeInt:    "Int",
	TypeFloat:  "Float",
	TypeString: "String",
	TypeMap:    "Map",
	TypeList:   "List",
}

// String is the short form used to compare types of the same field.
func (t *TypeRef) String() string {
	switch {
	case t == nil:
		return "Any"
	case t.Kind == TypeClass:
		return t.Class
	case t.Kind == TypeList && t.Elem != nil:
		return "List[" + t.Elem.String() + "]"
	}
	return scalars[t.Kind]
}

// Expr renders the schema type expression, classVar maps class names to their variables.
func (t *TypeRef) Expr(classVar func(class string) string) string {
	switch {
	case t == nil:
		return schemaPackage + ".Any"
	case t.Kind == TypeClass:
		return schemaPackage + ".ObjectOf(" + classVar(t.Class) + ")"
	case t.Kind == TypeList && t.Elem != nil:
		return schemaPackage + ".ListOf(" + t.Elem.Expr(classVar) + ")"
	}
	return schemaPackage + "." + op.IfElse(len(scalars[t.Kind]) > 0, scalars[t.Kind], "Any")
}
