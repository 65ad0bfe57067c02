package schema

import (
	"iter"

	"github.com/m4gshm/flexmap/logger"
)

// Item is a field name and its read value.
type Item struct {
	Name  string
	Value any
}

// FieldItems iterates readable fields in declaration order with values read through getters.
// Failed reads are handled according to the schema iteration policy; the strict policy ends the iteration.
func (o *Object) FieldItems() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if err := o.walkFields(yield); err != nil {
			logger.Debugw("field iteration stopped", "schema", o.schema.name, "err", err)
		}
	}
}

// CollectFieldItems is like FieldItems but reports the error that stopped the strict iteration.
func (o *Object) CollectFieldItems() ([]Item, error) {
	var items []Item
	err := o.walkFields(func(name string, value any) bool {
		items = append(items, Item{Name: name, Value: value})
		return true
	})
	return items, err
}

func (o *Object) walkFields(yield func(string, any) bool) error {
	s := o.schema
	for name, f := range s.fields.All {
		raw, present := o.data.Get(f.key)
		if !s.cfg.createIter {
			if present && !yield(name, raw) {
				return nil
			}
			continue
		}
		a := s.accessors[name]
		if a.get == nil || (!present && s.cfg.iterPolicy == IterSkipAbsent) {
			continue
		}
		v, err := a.get(o.data)
		if err != nil {
			if s.cfg.iterPolicy == IterStrict {
				return err
			}
			continue
		}
		if !yield(name, v) {
			return nil
		}
	}
	return nil
}

func (o *Object) fieldViews() bool {
	return o.schema.cfg.itemsFieldOnly || (o.schema.cfg.createIter && o.schema.cfg.iterName == ItemsIterName)
}

// Items iterates the mapping, or the fields when the schema iterates items by fields.
func (o *Object) Items() iter.Seq2[string, any] {
	if o.fieldViews() {
		return o.FieldItems()
	}
	return o.data.All
}

func (o *Object) Keys() []string {
	var keys []string
	for k := range o.Items() {
		keys = append(keys, k)
	}
	return keys
}

func (o *Object) Values() []any {
	var values []any
	for _, v := range o.Items() {
		values = append(values, v)
	}
	return values
}

// Iter looks up an iteration view by its name: the configured field iteration name or "items".
func (o *Object) Iter(name string) (iter.Seq2[string, any], bool) {
	cfg := o.schema.cfg
	if cfg.createIter && name == cfg.iterName {
		return o.FieldItems(), true
	} else if name == ItemsIterName {
		return o.Items(), true
	}
	return nil, false
}
