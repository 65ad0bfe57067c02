package schema

import (
	"github.com/m4gshm/flexmap/dict"
)

type (
	getter  func(d *dict.Dict) (any, error)
	setter  func(d *dict.Dict, value any) error
	deleter func(d *dict.Dict) error
)

// accessor is the synthesized access triple of a key field. A nil func means the permission is off.
// store writes the encoded value regardless of the writeable flag, used while initializing.
type accessor struct {
	get   getter
	set   setter
	del   deleter
	store setter
}

func buildAccessor(schemaName string, f *Field) *accessor {
	a := &accessor{store: buildSetter(schemaName, f)}
	if f.readable {
		a.get = buildGetter(schemaName, f)
	}
	if f.writeable {
		a.set = a.store
	}
	if f.deletable {
		a.del = buildDeleter(schemaName, f)
	}
	return a
}

func buildGetter(schemaName string, f *Field) getter {
	name, key, decoder := f.name, f.key, f.decoder
	read := func(d *dict.Dict) (any, bool, error) {
		v, ok := d.Get(key)
		if !ok {
			return nil, false, nil
		} else if decoder == nil {
			return v, true, nil
		}
		decoded, err := decoder(v)
		if err != nil {
			return nil, true, wrapFieldErr(ErrValue, schemaName, name, err)
		}
		return decoded, true, nil
	}
	switch {
	case f.def != Missing:
		def := f.def
		return func(d *dict.Dict) (any, error) {
			if v, ok, err := read(d); ok {
				return v, err
			}
			return def, nil
		}
	case f.factory != nil:
		factory := f.factory
		return func(d *dict.Dict) (any, error) {
			if v, ok, err := read(d); ok {
				return v, err
			}
			return factory(), nil
		}
	case f.mapFactory != nil:
		factory := f.mapFactory
		return func(d *dict.Dict) (any, error) {
			if v, ok, err := read(d); ok {
				return v, err
			}
			v, err := factory(d)
			if err != nil {
				return nil, wrapFieldErr(ErrValue, schemaName, name, err)
			}
			return v, nil
		}
	default:
		return func(d *dict.Dict) (any, error) {
			if v, ok, err := read(d); ok {
				return v, err
			}
			return nil, fieldErr(ErrMissingKey, schemaName, name, "key '"+key+"' not found")
		}
	}
}

func buildSetter(schemaName string, f *Field) setter {
	name, key, encoder := f.name, f.key, f.encoder
	if encoder == nil {
		return func(d *dict.Dict, value any) error {
			d.Set(key, value)
			return nil
		}
	}
	return func(d *dict.Dict, value any) error {
		encoded, err := encoder(value)
		if err != nil {
			return wrapFieldErr(ErrValue, schemaName, name, err)
		}
		d.Set(key, encoded)
		return nil
	}
}

func buildDeleter(schemaName string, f *Field) deleter {
	name, key := f.name, f.key
	if f.checkExist {
		return func(d *dict.Dict) error {
			d.Delete(key)
			return nil
		}
	}
	return func(d *dict.Dict) error {
		if !d.Delete(key) {
			return fieldErr(ErrMissingKey, schemaName, name, "key '"+key+"' not found")
		}
		return nil
	}
}
