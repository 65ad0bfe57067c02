package generator

type Emit string

const (
	EmitSchemas  Emit = "schemas"
	EmitRegistry Emit = "registry"
	EmitKeys     Emit = "keys"
)

var Emits = []Emit{EmitSchemas, EmitRegistry, EmitKeys}

const RegistryVar = "Registry"

type Config struct {
	Package           string
	Indent            int
	DictAsClass       bool
	ListWithGeneric   bool
	ClassNameStyle    NameStyle
	FieldNameStyle    NameStyle
	ClassNameForm     NameForm
	ListFieldNameForm NameForm
	// AlwaysExplicitKey renders the key option even if the key equals the field name.
	AlwaysExplicitKey bool
	// Inherit declares classes by schema.MustSubclass, otherwise by schema.MustProcess.
	Inherit bool
	Emit    []Emit
}

func DefaultConfig() *Config {
	return &Config{
		Package:           DefaultPackage,
		DictAsClass:       true,
		ListWithGeneric:   true,
		ClassNameStyle:    UpperCamel,
		FieldNameStyle:    LowerLine,
		ClassNameForm:     SingularForm,
		ListFieldNameForm: PluralForm,
		Inherit:           true,
		Emit:              []Emit{EmitSchemas},
	}
}

func (c *Config) emits(e Emit) bool {
	for _, v := range c.Emit {
		if v == e {
			return true
		}
	}
	return false
}
