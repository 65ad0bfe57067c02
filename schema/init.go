package schema

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/dict"
)

type initArgs struct {
	sources []any
	names   []string
	values  map[string]any
	extras  []extra
}

type extra struct {
	key   string
	value any
}

// InitOption is an argument of Schema.New.
type InitOption func(*initArgs)

// From copies the entries of a source mapping: map[string]any, *dict.Dict or *Object.
func From(src any) InitOption {
	return func(a *initArgs) { a.sources = append(a.sources, src) }
}

// With sets a field by declared name through its setter.
func With(name string, value any) InitOption {
	return func(a *initArgs) {
		if _, ok := a.values[name]; !ok {
			a.names = append(a.names, name)
		}
		a.values[name] = value
	}
}

// Extra stores an undeclared key as is, after all fields are initialized.
func Extra(key string, value any) InitOption {
	return func(a *initArgs) { a.extras = append(a.extras, extra{key: key, value: value}) }
}

// New creates an object backed by a new mapping.
// Sources are merged first, then every field is initialized in declaration order:
// a With value is set, a present value is re-encoded, an absent one receives the default.
func (s *Schema) New(opts ...InitOption) (*Object, error) {
	args := &initArgs{values: map[string]any{}}
	for _, opt := range opts {
		opt(args)
	}
	o := s.newObject(dict.New())
	for i, src := range args.sources {
		if err := merge(o.data, src); err != nil {
			return nil, errors.Wrapf(err, "%s source %d", s.name, i)
		}
	}
	if s.cfg.createInit {
		if err := s.initFields(o, args); err != nil {
			return nil, err
		}
	} else {
		for _, name := range args.names {
			o.data.Set(name, args.values[name])
		}
	}
	for _, e := range args.extras {
		o.data.Set(e.key, e.value)
	}
	return o, nil
}

func (s *Schema) MustNew(opts ...InitOption) *Object {
	o, err := s.New(opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// FromDict creates an object initialized from the mapping's copy.
func (s *Schema) FromDict(d *dict.Dict) (*Object, error) {
	return s.New(From(d))
}

// FromList creates an object of every mapping of the list.
func (s *Schema) FromList(items []any) ([]*Object, error) {
	result := make([]*Object, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case *dict.Dict, map[string]any, *Object:
			o, err := s.New(From(v))
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			result = append(result, o)
		default:
			return nil, fieldErr(ErrValue, s.name, "", fmt.Sprintf("item %d: %T is not a mapping", i, item))
		}
	}
	return result, nil
}

func (s *Schema) initFields(o *Object, args *initArgs) error {
	for name, f := range s.fields.All {
		a := s.accessors[name]
		if v, ok := args.values[name]; ok {
			if a.set == nil {
				return fieldErr(ErrNoAccessor, s.name, name, "field is not writeable")
			} else if err := a.set(o.data, v); err != nil {
				return err
			}
		} else if raw, ok := o.data.Get(f.key); ok {
			if f.encoder != nil {
				if err := a.store(o.data, raw); err != nil {
					return err
				}
			}
		} else if v, ok, err := f.defaultValue(o.data); err != nil {
			return wrapFieldErr(ErrValue, s.name, name, err)
		} else if ok {
			if err := a.store(o.data, v); err != nil {
				return err
			}
		}
	}
	for _, name := range args.names {
		switch {
		case s.fields.Contains(name):
		case s.excluded.Contains(name):
			o.attrs[name] = args.values[name]
		case s.statics.Contains(name):
			return fieldErr(ErrNoAccessor, s.name, name, "static field cannot be initialized")
		default:
			return fieldErr(ErrUnknownField, s.name, name, "")
		}
	}
	return nil
}

func merge(d *dict.Dict, src any) error {
	switch v := src.(type) {
	case nil:
	case *dict.Dict:
		d.Update(v)
	case *Object:
		if v != nil {
			d.Update(v.data)
		}
	case map[string]any:
		d.Update(dict.Of(v))
	default:
		return errors.Wrapf(ErrValue, "unsupported source type %T", src)
	}
	return nil
}
