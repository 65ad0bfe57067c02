// Package omap adds key removal to gollections ordered maps.
package omap

import (
	"github.com/m4gshm/gollections/collection/mutable/ordered"
)

// Delete removes the key in place keeping the order of the remaining keys.
// A range over the map started before the call keeps iterating the previous content.
func Delete[K comparable, V any](m *ordered.Map[K, V], key K) (V, bool) {
	value, ok := m.Get(key)
	if !ok {
		return value, false
	}
	order := make([]K, 0, m.Len()-1)
	elements := make(map[K]V, m.Len()-1)
	for k, v := range m.All {
		if k != key {
			order = append(order, k)
			elements[k] = v
		}
	}
	*m = *ordered.WrapMap(order, elements)
	return value, true
}
