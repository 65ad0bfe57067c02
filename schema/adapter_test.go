package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upper struct{}

func (upper) Cast(v any) (any, error) { return strings.ToUpper(v.(string)), nil }

type both struct{}

func (both) Cast(any) (any, error)   { return "cast", nil }
func (both) Encode(any) (any, error) { return "encode", nil }

func Test_EncoderFunc(t *testing.T) {
	for name, encoder := range map[string]any{
		"adapter":  upper{},
		"func":     Func(func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }),
		"func err": func(v any) (any, error) { return strings.ToUpper(v.(string)), nil },
		"func any": func(v any) any { return strings.ToUpper(v.(string)) },
	} {
		t.Run(name, func(t *testing.T) {
			f, err := EncoderFunc(encoder)
			require.NoError(t, err)
			v, err := f("a")
			assert.NoError(t, err)
			assert.Equal(t, "A", v)
		})
	}

	f, err := EncoderFunc(both{})
	require.NoError(t, err)
	v, _ := f(nil)
	assert.Equal(t, "encode", v)

	f, err = DecoderFunc(both{})
	require.NoError(t, err)
	v, _ = f(nil)
	assert.Equal(t, "cast", v)

	_, err = EncoderFunc(1)
	assert.ErrorContains(t, err, "unexpected encoder type: int")
}

func Test_ArrayEncoder(t *testing.T) {
	e, err := NewArrayEncoder(upper{})
	require.NoError(t, err)

	v, err := e.Encode([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, []any{"A", "B"}, v)

	v, err = e.Encode(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = e.Encode(map[string]any{})
	assert.ErrorIs(t, err, ErrValue)

	_, err = NewArrayEncoder(nil)
	assert.Error(t, err)
}

func Test_DefaultDetector(t *testing.T) {
	s := MustProcess(Declare("A"))
	d := DefaultDetector{}

	assert.NotNil(t, d.DetectEncoder(ObjectOf(s)))
	assert.NotNil(t, d.DetectEncoder(ListOf(ObjectOf(s))))
	assert.NotNil(t, d.DetectEncoder(OptionalOf(ObjectOf(s))))
	assert.NotNil(t, d.DetectEncoder(ExcludedOf(ObjectOf(s))))
	assert.Nil(t, d.DetectEncoder(ListOf(Int)))
	assert.Nil(t, d.DetectEncoder(UnionOf(ObjectOf(s), String)))
	assert.Nil(t, d.DetectEncoder(List))
	assert.Nil(t, d.DetectEncoder(nil))
	assert.Nil(t, d.DetectDecoder(ObjectOf(s)))
}

func Test_TypeString(t *testing.T) {
	s := MustProcess(Declare("A"))
	assert.Equal(t, "int", Int.String())
	assert.Equal(t, "list[A]", ListOf(ObjectOf(s)).String())
}
