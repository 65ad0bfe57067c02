package schema

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfig marks invalid schema declarations, reported while processing.
	ErrConfig = errors.New("schema configuration")
	// ErrMissingKey is returned when reading an absent key of a field without default.
	ErrMissingKey = errors.New("missing key")
	// ErrNoAccessor is returned when the field's read, write or delete permission is off.
	ErrNoAccessor = errors.New("missing accessor")
	// ErrValue is returned when an adapter gets a value of unexpected shape.
	ErrValue = errors.New("invalid value")
	// ErrUnknownField is returned for names that are not declared by the schema.
	ErrUnknownField = errors.New("unknown field")
)

// FieldError binds an error kind to the schema and field that caused it.
type FieldError struct {
	Schema string
	Field  string
	Kind   error
	cause  error
	msg    string
}

func (e *FieldError) Error() string {
	m := e.Kind.Error() + ": " + e.Schema
	if len(e.Field) > 0 {
		m += "." + e.Field
	}
	if len(e.msg) > 0 {
		m += ": " + e.msg
	}
	if e.cause != nil {
		m += ": " + e.cause.Error()
	}
	return m
}

// Is matches both the kind and the wrapped cause.
func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

func (e *FieldError) Unwrap() error {
	return e.cause
}

func configErr(schema, field, msg string) error {
	return &FieldError{Schema: schema, Field: field, Kind: ErrConfig, msg: msg}
}

func fieldErr(kind error, schema, field, msg string) error {
	return &FieldError{Schema: schema, Field: field, Kind: kind, msg: msg}
}

func wrapFieldErr(kind error, schema, field string, cause error) error {
	return &FieldError{Schema: schema, Field: field, Kind: kind, cause: cause}
}
