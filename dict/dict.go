// Package dict provides the ordered key-value mapping that backs schema objects.
package dict

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/collection/mutable/ordered"
	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/internal/omap"
)

// Dict is an insertion-ordered string keyed mapping.
// The zero value is an empty mapping ready to use.
type Dict struct {
	elements *ordered.Map[string, any]
}

// New creates an empty Dict.
func New() *Dict {
	return &Dict{elements: mutable.NewMapOrdered[string, any]()}
}

// Of copies a native map. Keys are inserted in sorted order so the result does not depend on map iteration.
func Of(m map[string]any) *Dict {
	d := New()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		d.Set(k, m[k])
	}
	return d
}

// Pairs builds a Dict from alternating keys and values.
func Pairs(keyValues ...any) (*Dict, error) {
	if len(keyValues)%2 != 0 {
		return nil, errors.Errorf("odd number of key-value arguments: %d", len(keyValues))
	}
	d := New()
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			return nil, errors.Errorf("key at position %d is not a string: %T", i, keyValues[i])
		}
		d.Set(key, keyValues[i+1])
	}
	return d, nil
}

func (d *Dict) init() *ordered.Map[string, any] {
	if d.elements == nil {
		d.elements = mutable.NewMapOrdered[string, any]()
	}
	return d.elements
}

func (d *Dict) Get(key string) (any, bool) {
	if d == nil || d.elements == nil {
		return nil, false
	}
	return d.elements.Get(key)
}

func (d *Dict) Has(key string) bool {
	if d == nil || d.elements == nil {
		return false
	}
	return d.elements.Contains(key)
}

// Set stores the value under the key. An existing key keeps its position.
func (d *Dict) Set(key string, value any) {
	d.init().Set(key, value)
}

// Delete removes the key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	_, ok := d.Pop(key)
	return ok
}

// Pop removes the key and returns its last value.
func (d *Dict) Pop(key string) (any, bool) {
	if d == nil || d.elements == nil {
		return nil, false
	}
	return omap.Delete(d.elements, key)
}

func (d *Dict) Len() int {
	if d == nil || d.elements == nil {
		return 0
	}
	return d.elements.Len()
}

// All iterates key-value pairs in insertion order.
func (d *Dict) All(yield func(string, any) bool) {
	if d == nil || d.elements == nil {
		return
	}
	for k, v := range d.elements.All {
		if !yield(k, v) {
			return
		}
	}
}

func (d *Dict) Keys() []string {
	keys := make([]string, 0, d.Len())
	for k := range d.All {
		keys = append(keys, k)
	}
	return keys
}

func (d *Dict) Values() []any {
	values := make([]any, 0, d.Len())
	for _, v := range d.All {
		values = append(values, v)
	}
	return values
}

// Update copies every pair of src into d, src values win.
func (d *Dict) Update(src *Dict) {
	for k, v := range src.All {
		d.Set(k, v)
	}
}

// Clone makes a shallow copy.
func (d *Dict) Clone() *Dict {
	c := New()
	c.Update(d)
	return c
}

// ToMap makes a shallow native map copy.
func (d *Dict) ToMap() map[string]any {
	m := make(map[string]any, d.Len())
	for k, v := range d.All {
		m[k] = v
	}
	return m
}

func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range d.All {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal key %s", k)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Dict) UnmarshalJSON(data []byte) error {
	doc, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	decoded, ok := doc.(*Dict)
	if !ok {
		return errors.Errorf("json value is not an object: %T", doc)
	}
	d.elements = decoded.init()
	return nil
}
