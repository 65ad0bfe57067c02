package schema

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/dict"
)

// Object is a mapping viewed through a schema.
// Key fields live in the mapping, excluded fields live in the object only.
type Object struct {
	schema *Schema
	data   *dict.Dict
	attrs  map[string]any
}

func (s *Schema) newObject(d *dict.Dict) *Object {
	o := &Object{schema: s, data: d, attrs: map[string]any{}}
	for name, f := range s.excluded.All {
		if f.def != Missing {
			o.attrs[name] = f.def
		}
	}
	return o
}

// Wrap adopts the mapping as is, without initialization. A nil mapping is replaced by an empty one.
func (s *Schema) Wrap(d *dict.Dict) *Object {
	if d == nil {
		d = dict.New()
	}
	return s.newObject(d)
}

func (o *Object) Schema() *Schema { return o.schema }

// Dict returns the backing mapping.
func (o *Object) Dict() *dict.Dict { return o.data }

// IsInstance reports whether the object's schema is s or derives from it.
func (o *Object) IsInstance(s *Schema) bool {
	return o != nil && o.schema.IsSubschemaOf(s)
}

// Get reads a field by its declared name.
func (o *Object) Get(name string) (any, error) {
	s := o.schema
	if a, ok := s.accessors[name]; ok {
		if a.get == nil {
			return nil, fieldErr(ErrNoAccessor, s.name, name, "field is not readable")
		}
		return a.get(o.data)
	} else if s.excluded.Contains(name) {
		if v, ok := o.attrs[name]; ok {
			return v, nil
		}
		return nil, fieldErr(ErrMissingKey, s.name, name, "attribute is not set")
	} else if v, ok := s.statics.Get(name); ok {
		return v, nil
	}
	return nil, fieldErr(ErrUnknownField, s.name, name, "")
}

// Set writes a field by its declared name, passing the value through the field encoder.
func (o *Object) Set(name string, value any) error {
	s := o.schema
	if a, ok := s.accessors[name]; ok {
		if a.set == nil {
			return fieldErr(ErrNoAccessor, s.name, name, "field is not writeable")
		}
		return a.set(o.data, value)
	} else if s.excluded.Contains(name) {
		o.attrs[name] = value
		return nil
	} else if s.statics.Contains(name) {
		return fieldErr(ErrNoAccessor, s.name, name, "static field is read-only")
	}
	return fieldErr(ErrUnknownField, s.name, name, "")
}

func (o *Object) Delete(name string) error {
	s := o.schema
	if a, ok := s.accessors[name]; ok {
		if a.del == nil {
			return fieldErr(ErrNoAccessor, s.name, name, "field is not deletable")
		}
		return a.del(o.data)
	} else if s.excluded.Contains(name) {
		if _, ok := o.attrs[name]; !ok {
			return fieldErr(ErrMissingKey, s.name, name, "attribute is not set")
		}
		delete(o.attrs, name)
		return nil
	} else if s.statics.Contains(name) {
		return fieldErr(ErrNoAccessor, s.name, name, "static field is read-only")
	}
	return fieldErr(ErrUnknownField, s.name, name, "")
}

// Has reports whether the field has a stored value. Defaults are not taken into account.
func (o *Object) Has(name string) bool {
	s := o.schema
	if f, ok := s.fields.Get(name); ok {
		return o.data.Has(f.key)
	} else if s.excluded.Contains(name) {
		_, ok := o.attrs[name]
		return ok
	}
	return s.statics.Contains(name)
}

func (o *Object) String() string {
	b, err := o.data.MarshalJSON()
	if err != nil {
		return o.schema.name + "(" + err.Error() + ")"
	}
	return o.schema.name + string(b)
}

// MarshalJSON writes the backing mapping.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.data.MarshalJSON()
}

// UnmarshalJSON initializes the object from a JSON object. The object must have a schema, see Schema.Wrap.
func (o *Object) UnmarshalJSON(data []byte) error {
	if o.schema == nil {
		return errors.New("unmarshal into object without schema")
	}
	doc, err := dict.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	d, ok := doc.(*dict.Dict)
	if !ok {
		return fieldErr(ErrValue, o.schema.name, "", fmt.Sprintf("JSON %T is not an object", doc))
	}
	decoded, err := o.schema.New(From(d))
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}

// Value reads a field and asserts its type. A nil value gives the zero value of T.
func Value[T any](o *Object, name string) (T, error) {
	var zero T
	v, err := o.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fieldErr(ErrValue, o.schema.name, name, fmt.Sprintf("unexpected value type %T", v))
	}
	return t, nil
}
