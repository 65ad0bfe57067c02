package generator

import (
	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/collection/mutable/ordered"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/m4gshm/flexmap/dict"
	"github.com/m4gshm/flexmap/logger"
)

// Builder infers classes from example documents.
type Builder struct {
	cfg     *Config
	log     *zap.SugaredLogger
	classes *ordered.Map[string, *ClassDef]
}

// NewBuilder creates a builder; a nil log means the process logger.
func NewBuilder(cfg *Config, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = logger.Get()
	}
	return &Builder{cfg: cfg, log: log, classes: mutable.NewMapOrdered[string, *ClassDef]()}
}

// Classes returns the inferred classes in discovery order.
func (b *Builder) Classes() []*ClassDef {
	classes := make([]*ClassDef, 0, b.classes.Len())
	for _, c := range b.classes.All {
		classes = append(classes, c)
	}
	return classes
}

// BuildAll builds the root class from every document and breaks reference cycles. A document must be an object.
func (b *Builder) BuildAll(name string, docs []any) error {
	if len(docs) == 0 {
		return errors.New("no data given")
	}
	for i, doc := range docs {
		d, ok := doc.(*dict.Dict)
		if !ok {
			return errors.Errorf("document %d is not an object: %T", i, doc)
		}
		b.Build(name, d)
	}
	b.BreakCycles()
	return nil
}

// BreakCycles retypes as Map every class reference through which a class reaches itself.
// Generated schema variables cannot refer to themselves.
// Classes are visited in discovery order, so the reference found first is the one replaced.
func (b *Builder) BreakCycles() {
	for _, c := range b.classes.All {
		for _, f := range c.Fields {
			if ref := classRef(f.Type); ref != nil && b.reaches(ref.Class, c.Name, map[string]bool{}) {
				b.log.Warnw("recursive class reference replaced by map", "class", c.Name, "field", f.Name, "ref", ref.Class)
				ref.Kind, ref.Class = TypeMap, ""
			}
		}
	}
}

// reaches reports whether the target class is the from class or is referenced from it transitively.
func (b *Builder) reaches(from, target string, visited map[string]bool) bool {
	if from == target {
		return true
	} else if visited[from] {
		return false
	}
	visited[from] = true
	c, ok := b.classes.Get(from)
	if !ok {
		return false
	}
	for _, f := range c.Fields {
		if ref := classRef(f.Type); ref != nil && b.reaches(ref.Class, target, visited) {
			return true
		}
	}
	return false
}

// classRef returns the class reference of a class type or of a list element type at any depth.
func classRef(t *TypeRef) *TypeRef {
	for t != nil && t.Kind == TypeList {
		t = t.Elem
	}
	if t != nil && t.Kind == TypeClass {
		return t
	}
	return nil
}

// Build walks the document depth-first, creating or extending the named class and the classes of nested objects.
func (b *Builder) Build(name string, doc *dict.Dict) *ClassDef {
	c, ok := b.classes.Get(name)
	if !ok {
		c = &ClassDef{Name: name, log: b.log}
		b.classes.Set(name, c)
		b.log.Debugw("class discovered", "class", name)
	}
	for key, value := range doc.All {
		typ := b.typeOf(key, value)
		c.UpdateField(b.fieldName(key, value), typ, key)
	}
	return c
}

func (b *Builder) typeOf(key string, value any) *TypeRef {
	switch v := value.(type) {
	case nil:
		return &TypeRef{Kind: TypeNull}
	case bool:
		return &TypeRef{Kind: TypeBool}
	case int, int64:
		return &TypeRef{Kind: TypeInt}
	case float64:
		return &TypeRef{Kind: TypeFloat}
	case string:
		return &TypeRef{Kind: TypeString}
	case *dict.Dict:
		if !b.cfg.DictAsClass {
			return &TypeRef{Kind: TypeMap}
		}
		class := b.className(key)
		b.Build(class, v)
		return &TypeRef{Kind: TypeClass, Class: class}
	case []any:
		if !b.cfg.ListWithGeneric {
			return &TypeRef{Kind: TypeList}
		}
		for _, elem := range v {
			if elem != nil {
				return &TypeRef{Kind: TypeList, Elem: b.typeOf(Singular(key), elem)}
			}
		}
		return &TypeRef{Kind: TypeList}
	default:
		b.log.Debugf("unexpected value type %T of key %s", value, key)
		return &TypeRef{Kind: TypeAny}
	}
}

func (b *Builder) fieldName(key string, value any) string {
	form := UnchangedForm
	if _, ok := value.([]any); ok {
		form = b.cfg.ListFieldNameForm
	}
	return b.cfg.FieldNameStyle.Apply(form.Apply(key))
}

func (b *Builder) className(key string) string {
	return b.cfg.ClassNameStyle.Apply(b.cfg.ClassNameForm.Apply(key))
}
