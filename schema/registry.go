package schema

import (
	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/collection/mutable/ordered"
	"github.com/pkg/errors"
)

// Registry keeps schemas by name in registration order.
type Registry struct {
	schemas *ordered.Map[string, *Schema]
}

func NewRegistry() *Registry {
	return &Registry{schemas: mutable.NewMapOrdered[string, *Schema]()}
}

// Register adds the schema. Registering the same schema twice is a no-op,
// another schema with the same name is an error.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return errors.Wrap(ErrConfig, "nil schema")
	} else if existing, ok := r.schemas.Get(s.name); ok {
		if existing == s {
			return nil
		}
		return errors.Wrapf(ErrConfig, "schema '%s' is already registered", s.name)
	}
	r.schemas.Set(s.name, s)
	return nil
}

func (r *Registry) Lookup(name string) (*Schema, bool) {
	return r.schemas.Get(name)
}

// All returns the schemas in registration order.
func (r *Registry) All() []*Schema {
	result := make([]*Schema, 0, r.schemas.Len())
	for _, s := range r.schemas.All {
		result = append(result, s)
	}
	return result
}

func (r *Registry) Len() int {
	return r.schemas.Len()
}
