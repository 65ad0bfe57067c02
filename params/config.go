package params

import (
	"flag"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m4gshm/flag/flagenum"
	"github.com/m4gshm/gollections/slice"
	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/generator"
	"github.com/m4gshm/flexmap/logger"
	"github.com/m4gshm/flexmap/use"
)

const Name = "flexmap"

const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// BuildClass is the build-class command configuration.
type BuildClass struct {
	Name            string           `flag:"name" validate:"required"`
	Str             string           `flag:"str" validate:"required_without=Files,excluded_with=Files"`
	Files           []string         `flag:"file" validate:"required_without=Str,dive,required"`
	Format          string           `flag:"format" validate:"oneof=auto json yaml"`
	Encoding        string           `flag:"encoding" validate:"required"`
	Output          string           `flag:"out"`
	Package         string           `flag:"package"`
	Indent          int              `flag:"indent" validate:"min=0,max=16"`
	DictAsClass     bool             `flag:"dict-as-class"`
	ListWithGeneric bool             `flag:"list-with-generic"`
	ClassNameStyle  string           `flag:"class-name-style" validate:"oneof=upper_camel lower_camel upper_line lower_line unchanged"`
	FieldNameStyle  string           `flag:"field-name-style" validate:"oneof=upper_camel lower_camel upper_line lower_line unchanged"`
	ExplicitKey     bool             `flag:"explicit-key"`
	UseDecorator    bool             `flag:"use-decorator"`
	Emit            []generator.Emit `flag:"emit" validate:"min=1"`

	files *[]string
	emit  *[]generator.Emit
}

func toString[F ~string](from F) string { return string(from) }
func fromString[F ~string](s string) F  { return F(s) }

// NewBuildClass binds the configuration to the flag set.
func NewBuildClass(flagSet *flag.FlagSet) (*BuildClass, error) {
	styles := strings.Join(slice.Convert(generator.NameStyles, toString[generator.NameStyle]), ", ")
	c := &BuildClass{}
	flagSet.StringVar(&c.Name, "name", "", "root class name; must be set")
	flagSet.StringVar(&c.Str, "str", "", "example document string")
	c.files = multiVal(flagSet, "file", nil, "example document file; repeatable")
	flagSet.StringVar(&c.Format, "format", FormatAuto, "example document format: auto, json, yaml")
	flagSet.StringVar(&c.Encoding, "encoding", "utf-8", "example files encoding")
	flagSet.StringVar(&c.Output, "out", "", "output file; standard output if not set")
	flagSet.StringVar(&c.Package, "package", "", "generated package name; default is derived from the output directory or '"+generator.DefaultPackage+"'")
	flagSet.IntVar(&c.Indent, "indent", 0, "indent generated code by the number of spaces; tabs if 0")
	flagSet.BoolVar(&c.DictAsClass, "dict-as-class", true, "generate a class for object values, otherwise use schema.Map")
	flagSet.BoolVar(&c.ListWithGeneric, "list-with-generic", true, "type list fields by the first element, otherwise use schema.List")
	flagSet.StringVar(&c.ClassNameStyle, "class-name-style", string(generator.UpperCamel), "class name style ("+styles+")")
	flagSet.StringVar(&c.FieldNameStyle, "field-name-style", string(generator.LowerLine), "field name style ("+styles+")")
	flagSet.BoolVar(&c.ExplicitKey, "explicit-key", false, "always declare the field key")
	flagSet.BoolVar(&c.UseDecorator, "use-decorator", false, "declare classes by schema.MustProcess instead of schema.MustSubclass")
	emit, err := flagenum.Multiple(flagSet, "emit", slice.Of(generator.EmitSchemas), generator.Emits,
		fromString[generator.Emit], toString[generator.Emit], "generated declarations")
	if err != nil {
		return nil, err
	}
	c.emit = emit
	return c, nil
}

// Validate checks the parsed flags.
func (c *BuildClass) Validate() error {
	c.Files = nil
	if files := *c.files; len(files) > 0 {
		c.Files = files
	}
	c.Emit = *c.emit
	logger.Debugw("build-class config", "config", c)

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("flag") })
	err := v.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, flagError(e))
		}
		return use.Err(strings.Join(slices.Compact(messages), "; "))
	}
	return err
}

func flagError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "-" + e.Field() + " must be set"
	case "required_without":
		return "-str or -file must be set"
	case "excluded_with":
		return "-str and -file are mutually exclusive"
	case "oneof":
		return "-" + e.Field() + ": expected one of " + e.Param()
	}
	return "-" + e.Field() + ": invalid value, " + e.Tag() + "=" + e.Param()
}

// Generator returns the generator configuration.
func (c *BuildClass) Generator() *generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Package = c.Package
	cfg.Indent = c.Indent
	cfg.DictAsClass = c.DictAsClass
	cfg.ListWithGeneric = c.ListWithGeneric
	cfg.ClassNameStyle = generator.NameStyle(c.ClassNameStyle)
	cfg.FieldNameStyle = generator.NameStyle(c.FieldNameStyle)
	cfg.AlwaysExplicitKey = c.ExplicitKey
	cfg.Inherit = !c.UseDecorator
	cfg.Emit = c.Emit
	return cfg
}
