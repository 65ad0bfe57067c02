package schema

import (
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/dict"
)

// Role says where a field value lives.
type Role int

const (
	// RoleKey is an ordinary field stored in the mapping.
	RoleKey Role = iota
	// RoleStatic is a class-scoped constant kept by the schema.
	RoleStatic
	// RoleExcluded is an object-scoped attribute kept outside the mapping.
	RoleExcluded
)

func (r Role) String() string {
	switch r {
	case RoleStatic:
		return "static"
	case RoleExcluded:
		return "excluded"
	default:
		return "key"
	}
}

type missing struct{}

func (missing) String() string { return "<missing>" }

// Missing as a field value means "no default": reading the absent key fails even if the schema has a fallback default.
var Missing any = missing{}

type unset struct{}

type auto struct{}

// Auto selects adapters through the schema Detector. It is the encoder and decoder default.
var Auto any = auto{}

// FieldSpec is an explicit field definition. Build it with F.
type FieldSpec struct {
	key         string
	readable    bool
	writeable   bool
	deletable   bool
	def         any
	factory     func() any
	mapFactory  func(d *dict.Dict) (any, error)
	defaultExpr string
	static      bool
	exclude     bool
	checkExist  bool
	encoder     any
	decoder     any
	metadata    map[string]any
}

type FieldOption func(*FieldSpec)

// F makes an explicit field definition.
func F(opts ...FieldOption) *FieldSpec {
	f := &FieldSpec{
		readable:   true,
		writeable:  true,
		deletable:  true,
		def:        unset{},
		checkExist: true,
		encoder:    Auto,
		decoder:    Auto,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Key overrides the mapping key, the field name by default.
func Key(key string) FieldOption {
	return func(f *FieldSpec) { f.key = key }
}

func Readable(readable bool) FieldOption {
	return func(f *FieldSpec) { f.readable = readable }
}

func Writeable(writeable bool) FieldOption {
	return func(f *FieldSpec) { f.writeable = writeable }
}

func Deletable(deletable bool) FieldOption {
	return func(f *FieldSpec) { f.deletable = deletable }
}

// ReadOnly disables both writing and deleting.
func ReadOnly() FieldOption {
	return func(f *FieldSpec) { f.writeable, f.deletable = false, false }
}

func Default(value any) FieldOption {
	return func(f *FieldSpec) { f.def = value }
}

func DefaultFactory(factory func() any) FieldOption {
	return func(f *FieldSpec) { f.factory = factory }
}

// DefaultFrom computes the default from the backing mapping.
func DefaultFrom(factory func(d *dict.Dict) (any, error)) FieldOption {
	return func(f *FieldSpec) { f.mapFactory = factory }
}

// DefaultExpr computes the default by an expression over the mapping keys, e.g. "width * height".
// Builtin functions are disabled so that every identifier refers to a mapping key.
func DefaultExpr(expression string) FieldOption {
	return func(f *FieldSpec) { f.defaultExpr = expression }
}

func Static() FieldOption {
	return func(f *FieldSpec) { f.static = true }
}

func Exclude() FieldOption {
	return func(f *FieldSpec) { f.exclude = true }
}

// StrictDelete makes deleting an absent key fail with ErrMissingKey.
func StrictDelete() FieldOption {
	return func(f *FieldSpec) { f.checkExist = false }
}

// Encoder accepts a ValueEncoder, Adapter, Func or plain conversion function; nil disables encoding.
func Encoder(encoder any) FieldOption {
	return func(f *FieldSpec) { f.encoder = encoder }
}

// Decoder accepts a ValueDecoder, Adapter, Func or plain conversion function; nil disables decoding.
func Decoder(decoder any) FieldOption {
	return func(f *FieldSpec) { f.decoder = decoder }
}

func NoEncoder() FieldOption { return Encoder(nil) }

func NoDecoder() FieldOption { return Decoder(nil) }

func Metadata(key string, value any) FieldOption {
	return func(f *FieldSpec) {
		if f.metadata == nil {
			f.metadata = map[string]any{}
		}
		f.metadata[key] = value
	}
}

// Field is a resolved field descriptor. It is immutable once its schema is processed.
type Field struct {
	name       string
	key        string
	typ        *Type
	role       Role
	readable   bool
	writeable  bool
	deletable  bool
	def        any
	factory    func() any
	mapFactory func(d *dict.Dict) (any, error)
	checkExist bool
	encoder    Func
	decoder    Func
	metadata   map[string]any
}

func (f *Field) Name() string { return f.name }
func (f *Field) Key() string { return f.key }
func (f *Field) Type() *Type { return f.typ }
func (f *Field) Role() Role { return f.role }
func (f *Field) Readable() bool { return f.readable }
func (f *Field) Writeable() bool { return f.writeable }
func (f *Field) Deletable() bool { return f.deletable }
func (f *Field) Encoder() Func { return f.encoder }
func (f *Field) Decoder() Func { return f.decoder }
func (f *Field) Metadata() map[string]any { return f.metadata }

// Default returns the fixed default, Missing if there is none.
func (f *Field) Default() any { return f.def }

// HasDefault reports whether an absent key still reads as a value.
func (f *Field) HasDefault() bool {
	return f.def != Missing || f.factory != nil || f.mapFactory != nil
}

// defaultValue computes the value of an absent key.
func (f *Field) defaultValue(d *dict.Dict) (any, bool, error) {
	switch {
	case f.def != Missing:
		return f.def, true, nil
	case f.factory != nil:
		return f.factory(), true, nil
	case f.mapFactory != nil:
		v, err := f.mapFactory(d)
		return v, err == nil, err
	default:
		return nil, false, nil
	}
}

// resolve turns a declared field into a descriptor. value is a *FieldSpec, an implicit default or unset.
func resolve(schemaName, name string, typ *Type, value any, cfg *config) (*Field, error) {
	if typ == nil {
		return nil, configErr(schemaName, name, "has no type annotation")
	}

	fs, ok := value.(*FieldSpec)
	if !ok {
		fs = F()
		if _, isUnset := value.(unset); !isUnset {
			fs.def = value
		}
	}
	_, defUnset := fs.def.(unset)

	f := &Field{
		name:       name,
		key:        fs.key,
		typ:        typ,
		role:       RoleKey,
		readable:   fs.readable,
		writeable:  fs.writeable,
		deletable:  fs.deletable,
		def:        fs.def,
		factory:    fs.factory,
		mapFactory: fs.mapFactory,
		checkExist: fs.checkExist,
		metadata:   fs.metadata,
	}
	if len(f.key) == 0 {
		f.key = name
	}

	if fs.static || typ.Kind() == KindStatic {
		f.role = RoleStatic
	} else if fs.exclude || typ.Kind() == KindExcluded {
		f.role = RoleExcluded
	}

	if len(fs.defaultExpr) > 0 {
		if f.mapFactory != nil {
			return nil, configErr(schemaName, name, "default expression conflicts with default factory")
		}
		program, err := expr.Compile(fs.defaultExpr, expr.AllowUndefinedVariables(), expr.DisableAllBuiltins())
		if err != nil {
			return nil, wrapFieldErr(ErrConfig, schemaName, name, errors.Wrap(err, "default expression"))
		}
		f.mapFactory = func(d *dict.Dict) (any, error) {
			return expr.Run(program, d.ToMap())
		}
	}

	hasFactory := f.factory != nil || f.mapFactory != nil
	if f.factory != nil && f.mapFactory != nil {
		return nil, configErr(schemaName, name, "cannot have two default factories")
	}
	if hasFactory && !defUnset && f.def != Missing {
		return nil, configErr(schemaName, name, "cannot specify both default and default factory")
	} else if hasFactory {
		f.def = Missing
	} else if defUnset {
		f.def = cfg.defaultFieldValue
	}

	switch f.role {
	case RoleStatic:
		if hasFactory {
			return nil, configErr(schemaName, name, "cannot have a default factory")
		}
	case RoleExcluded:
		if hasFactory {
			return nil, configErr(schemaName, name, "not allowed to specify a factory")
		}
	}
	if f.role != RoleStatic && isMutable(f.def) {
		return nil, configErr(schemaName, name, "mutable default "+reflect.TypeOf(f.def).String()+" is not allowed: use default factory")
	}

	var err error
	if f.encoder, err = adapter(fs.encoder, typ, cfg.detector.DetectEncoder, EncoderFunc); err != nil {
		return nil, wrapFieldErr(ErrConfig, schemaName, name, err)
	}
	if f.decoder, err = adapter(fs.decoder, typ, cfg.detector.DetectDecoder, DecoderFunc); err != nil {
		return nil, wrapFieldErr(ErrConfig, schemaName, name, err)
	}
	return f, nil
}

func adapter(value any, typ *Type, detect func(*Type) Func, normalize func(any) (Func, error)) (Func, error) {
	if value == Auto {
		if f := detect(typ); f != nil {
			return f, nil
		}
		return nil, nil
	} else if value == nil {
		return nil, nil
	}
	return normalize(value)
}

func isMutable(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case *dict.Dict, *Object:
		return true
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Map:
		return true
	}
	return false
}
