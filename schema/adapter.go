package schema

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/dict"
)

// Func converts a field value on write (encoder) or read (decoder).
type Func func(value any) (any, error)

// Adapter is a conversion usable both as encoder and decoder.
type Adapter interface {
	Cast(value any) (any, error)
}

// ValueEncoder converts a value written to a field.
type ValueEncoder interface {
	Encode(value any) (any, error)
}

// ValueDecoder converts a value read from a field.
type ValueDecoder interface {
	Decode(value any) (any, error)
}

// EncoderFunc normalizes an encoder value into a conversion function.
// ValueEncoder takes precedence over Adapter when a value implements both.
func EncoderFunc(encoder any) (Func, error) {
	if e, ok := encoder.(ValueEncoder); ok {
		return e.Encode, nil
	}
	return adapterFunc(encoder, "encoder")
}

// DecoderFunc normalizes a decoder value into a conversion function.
func DecoderFunc(decoder any) (Func, error) {
	if d, ok := decoder.(ValueDecoder); ok {
		return d.Decode, nil
	}
	return adapterFunc(decoder, "decoder")
}

func adapterFunc(adapter any, kind string) (Func, error) {
	switch a := adapter.(type) {
	case Adapter:
		return a.Cast, nil
	case Func:
		return a, nil
	case func(any) (any, error):
		return a, nil
	case func(any) any:
		return func(value any) (any, error) { return a(value), nil }, nil
	default:
		return nil, errors.Errorf("unexpected %s type: %T", kind, adapter)
	}
}

// ObjectEncoder wraps mapping values into objects of the schema.
type ObjectEncoder struct {
	Schema *Schema
}

var _ ValueEncoder = (*ObjectEncoder)(nil)

func (e *ObjectEncoder) Encode(value any) (any, error) {
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return nil, nil
		} else if v.IsInstance(e.Schema) {
			return v, nil
		}
		return e.Schema.New(From(v.Dict()))
	case *dict.Dict, map[string]any:
		return e.Schema.New(From(v))
	default:
		return value, nil
	}
}

// ArrayEncoder applies the element encoder to every element of a list.
type ArrayEncoder struct {
	Elem Func
}

var _ ValueEncoder = (*ArrayEncoder)(nil)

// NewArrayEncoder accepts any encoder form supported by EncoderFunc as the element encoder.
func NewArrayEncoder(elem any) (*ArrayEncoder, error) {
	if elem == nil {
		return nil, errors.New("array element encoder must be set")
	}
	f, err := EncoderFunc(elem)
	if err != nil {
		return nil, err
	}
	return &ArrayEncoder{Elem: f}, nil
}

func (e *ArrayEncoder) Encode(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, errors.Wrapf(ErrValue, "value is not a list: %T", value)
	}
	if rv.IsNil() {
		return nil, nil
	}
	result := make([]any, rv.Len())
	for i := range result {
		encoded, err := e.Elem(rv.Index(i).Interface())
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		result[i] = encoded
	}
	return result, nil
}
