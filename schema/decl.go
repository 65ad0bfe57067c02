package schema

import "slices"

type fieldDecl struct {
	name  string
	typ   *Type
	value any
}

type attrDecl struct {
	name  string
	value any
}

// Decl declares a schema: its name, bases, typed fields and plain attributes.
// A Decl is turned into a *Schema by Process or Subclass.
type Decl struct {
	name   string
	bases  []*Schema
	fields []fieldDecl
	attrs  []attrDecl
	schema *Schema
}

// Declare starts a declaration. Earlier bases take precedence over later ones.
func Declare(name string, bases ...*Schema) *Decl {
	return &Decl{name: name, bases: bases}
}

// Field declares a field. The optional value is either a field definition made by F or an implicit default.
// Redeclaring a name replaces the previous field or attribute declaration.
func (d *Decl) Field(name string, typ *Type, value ...any) *Decl {
	var v any = unset{}
	if len(value) > 0 {
		v = value[0]
	}
	d.attrs = slices.DeleteFunc(d.attrs, func(a attrDecl) bool { return a.name == name })
	d.fields = replace(d.fields, fieldDecl{name: name, typ: typ, value: v}, func(f fieldDecl) string { return f.name })
	return d
}

// Attr declares a plain class attribute without type. It is readable as a static value.
// Redeclaring a name replaces the previous field or attribute declaration.
func (d *Decl) Attr(name string, value any) *Decl {
	d.fields = slices.DeleteFunc(d.fields, func(f fieldDecl) bool { return f.name == name })
	d.attrs = replace(d.attrs, attrDecl{name: name, value: value}, func(a attrDecl) string { return a.name })
	return d
}

func replace[T any](decls []T, decl T, name func(T) string) []T {
	if i := slices.IndexFunc(decls, func(d T) bool { return name(d) == name(decl) }); i >= 0 {
		decls[i] = decl
		return decls
	}
	return append(decls, decl)
}

func (d *Decl) Name() string { return d.name }
