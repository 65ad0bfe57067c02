// Package schema exposes typed, attribute-style access over ordered mappings.
//
// A schema is declared with Declare, processed once with Process (or Subclass for the
// inheritance style) and then used to create objects backed by a dict.Dict:
//
//	var Point = schema.MustProcess(schema.Declare("Point").
//		Field("x", schema.Int, 0).
//		Field("y", schema.Int, 0).
//		Field("label", schema.String, schema.F(schema.Key("name"))))
//
//	p, err := Point.New(schema.With("x", 1))
//	x, err := schema.Value[int](p, "x")
package schema

import (
	"slices"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/collection/mutable/ordered"
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/flexmap/internal/omap"
)

// Schema is the processed, ordered set of field descriptors of a declaration.
type Schema struct {
	name      string
	bases     []*Schema
	cfg       *config
	fields    *ordered.Map[string, *Field]
	excluded  *ordered.Map[string, *Field]
	statics   *ordered.Map[string, any]
	accessors map[string]*accessor
	declared  *mutable.Set[string]
}

func newSchema(name string, bases []*Schema, cfg *config) *Schema {
	return &Schema{
		name:      name,
		bases:     bases,
		cfg:       cfg,
		fields:    mutable.NewMapOrdered[string, *Field](),
		excluded:  mutable.NewMapOrdered[string, *Field](),
		statics:   mutable.NewMapOrdered[string, any](),
		accessors: map[string]*accessor{},
		declared:  mutable.NewSet[string](),
	}
}

func (s *Schema) Name() string { return s.name }

func (s *Schema) String() string { return s.name }

func (s *Schema) Bases() []*Schema { return slices.Clone(s.bases) }

// Fields returns the mapping backed fields, inherited ones first.
func (s *Schema) Fields() []*Field {
	fields := make([]*Field, 0, s.fields.Len())
	for _, f := range s.fields.All {
		fields = append(fields, f)
	}
	return fields
}

func (s *Schema) FieldNames() []string {
	return slice.Convert(s.Fields(), (*Field).Name)
}

func (s *Schema) Field(name string) (*Field, bool) {
	return s.fields.Get(name)
}

// Excluded returns an object-scoped field.
func (s *Schema) Excluded(name string) (*Field, bool) {
	return s.excluded.Get(name)
}

// Static returns a class-scoped constant or a plain attribute.
func (s *Schema) Static(name string) (any, bool) {
	return s.statics.Get(name)
}

// IsSubschemaOf reports whether other is s or one of its ancestors.
func (s *Schema) IsSubschemaOf(other *Schema) bool {
	if s == nil || other == nil {
		return false
	} else if s == other {
		return true
	}
	for _, b := range s.bases {
		if b.IsSubschemaOf(other) {
			return true
		}
	}
	return false
}

func (s *Schema) putField(f *Field) {
	name := f.name
	switch f.role {
	case RoleKey:
		omap.Delete(s.excluded, name)
		omap.Delete(s.statics, name)
		s.fields.Set(name, f)
		s.accessors[name] = buildAccessor(s.name, f)
	case RoleExcluded:
		s.dropKeyField(name)
		omap.Delete(s.statics, name)
		s.excluded.Set(name, f)
	case RoleStatic:
		s.putStatic(name, f.def)
	}
}

func (s *Schema) putStatic(name string, value any) {
	s.dropKeyField(name)
	omap.Delete(s.excluded, name)
	if value == Missing {
		omap.Delete(s.statics, name)
	} else {
		s.statics.Set(name, value)
	}
}

func (s *Schema) dropKeyField(name string) {
	omap.Delete(s.fields, name)
	delete(s.accessors, name)
}
