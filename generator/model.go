package generator

import "go.uber.org/zap"

type FieldDef struct {
	Name string
	Type *TypeRef
	Key  string
}

// ClassDef is a class inferred from example documents.
type ClassDef struct {
	Name   string
	Fields []*FieldDef
	log    *zap.SugaredLogger
}

// UpdateField adds the field or, if a field with the same name exists, keeps it and warns about a different key or type.
// Returns the field index.
func (c *ClassDef) UpdateField(name string, typ *TypeRef, key string) int {
	for i, f := range c.Fields {
		if f.Name != name {
			continue
		}
		if f.Key != key {
			c.log.Warnw("conflict key", "class", c.Name, "field", name, "key", f.Key, "conflict", key)
		}
		if f.Type.String() != typ.String() {
			c.log.Warnw("conflict value type", "class", c.Name, "field", name, "type", f.Type.String(), "conflict", typ.String())
		}
		return i
	}
	c.Fields = append(c.Fields, &FieldDef{Name: name, Type: typ, Key: key})
	return len(c.Fields) - 1
}
