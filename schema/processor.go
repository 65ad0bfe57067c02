package schema

import (
	"fmt"
	"slices"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/logger"
)

// Process turns the declaration into a schema.
// Processing the same declaration again returns the already built schema extended by the fields declared since.
func Process(decl *Decl, opts ...Option) (*Schema, error) {
	if decl == nil {
		return nil, errors.Wrap(ErrConfig, "nil declaration")
	} else if s := decl.schema; s != nil {
		if err := s.extend(decl); err != nil {
			return nil, err
		}
		return s, nil
	}
	cfg := newConfig(opts...)
	if isMutable(cfg.defaultFieldValue) {
		return nil, configErr(decl.name, "", fmt.Sprintf("mutable default field value %T is not allowed", cfg.defaultFieldValue))
	}
	s := newSchema(decl.name, normalizeBases(decl.bases), cfg)
	s.inherit()
	if err := s.extend(decl); err != nil {
		return nil, err
	}
	if cfg.registry != nil {
		if err := cfg.registry.Register(s); err != nil {
			return nil, err
		}
	}
	decl.schema = s
	logger.Debugw("schema processed", "schema", s.name, "fields", s.FieldNames())
	return s, nil
}

// MustProcess is like Process but panics on a declaration error.
func MustProcess(decl *Decl, opts ...Option) *Schema {
	s, err := Process(decl, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Subclass processes the declaration as a JSONObject descendant.
func Subclass(decl *Decl, opts ...Option) (*Schema, error) {
	if decl != nil && !slices.ContainsFunc(decl.bases, func(b *Schema) bool { return b.IsSubschemaOf(JSONObject) }) {
		decl.bases = append(decl.bases, JSONObject)
		logger.Debugw("JSONObject base added, Process is the preferred way to declare schemas", "schema", decl.name)
	}
	return Process(decl, opts...)
}

func MustSubclass(decl *Decl, opts ...Option) *Schema {
	s, err := Subclass(decl, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func normalizeBases(bases []*Schema) []*Schema {
	seen := mutable.NewSet[*Schema]()
	result := make([]*Schema, 0, len(bases))
	for _, b := range bases {
		if b != nil && seen.AddNew(b) {
			result = append(result, b)
		}
	}
	return result
}

// inherit merges the bases' tables, the last base first so that earlier bases override.
func (s *Schema) inherit() {
	for i := len(s.bases) - 1; i >= 0; i-- {
		b := s.bases[i]
		for _, f := range b.fields.All {
			s.putField(f)
		}
		for _, f := range b.excluded.All {
			s.putField(f)
		}
		for name, v := range b.statics.All {
			s.putStatic(name, v)
		}
	}
}

// extend installs the declared fields and attributes that are not installed yet.
// Nothing is installed when any of them is invalid.
func (s *Schema) extend(decl *Decl) error {
	var fields []*Field
	for _, fd := range decl.fields {
		if s.declared.Contains(fd.name) {
			continue
		}
		f, err := resolve(s.name, fd.name, fd.typ, fd.value, s.cfg)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	var attrs []attrDecl
	for _, a := range decl.attrs {
		if s.declared.Contains(a.name) {
			continue
		} else if _, ok := a.value.(*FieldSpec); ok {
			return configErr(s.name, a.name, "is a field but has no type annotation")
		}
		attrs = append(attrs, a)
	}
	for _, f := range fields {
		s.putField(f)
		s.declared.Add(f.name)
	}
	for _, a := range attrs {
		s.putStatic(a.name, a.value)
		s.declared.Add(a.name)
	}
	return nil
}
