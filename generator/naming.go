package generator

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"github.com/m4gshm/gollections/predicate/is"
	"github.com/m4gshm/gollections/slice"
	"github.com/stoewer/go-strcase"
)

type NameStyle string

const (
	UpperCamel     NameStyle = "upper_camel"
	LowerCamel     NameStyle = "lower_camel"
	UpperLine      NameStyle = "upper_line"
	LowerLine      NameStyle = "lower_line"
	UnchangedStyle NameStyle = "unchanged"
)

var NameStyles = slice.Of(UpperCamel, LowerCamel, UpperLine, LowerLine, UnchangedStyle)

func (s NameStyle) Apply(name string) string {
	if len(name) == 0 {
		return name
	}
	switch s {
	case UpperCamel:
		return strcase.UpperCamelCase(name)
	case LowerCamel:
		return strcase.LowerCamelCase(name)
	case UpperLine:
		return strcase.UpperSnakeCase(name)
	case LowerLine:
		return strcase.SnakeCase(name)
	}
	return name
}

type NameForm string

const (
	SingularForm  NameForm = "singular"
	PluralForm    NameForm = "plural"
	UnchangedForm NameForm = "unchanged"
)

func (f NameForm) Apply(word string) string {
	switch f {
	case SingularForm:
		return Singular(word)
	case PluralForm:
		return Plural(word)
	}
	return word
}

// Singular strips list suffixes ("items_list", "itemsList") or singularizes the word.
func Singular(word string) string {
	for _, suffix := range []string{"_list", "List"} {
		if trimmed := strings.TrimSuffix(word, suffix); len(trimmed) > 0 && trimmed != word {
			return trimmed
		}
	}
	if s := inflection.Singular(word); len(s) > 0 {
		return s
	}
	return word
}

// Plural pluralizes a word unless it is already plural.
func Plural(word string) string {
	if Singular(word) != word {
		return word
	}
	return inflection.Plural(word)
}

// LegalIdentName makes a valid exported Go identifier.
func LegalIdentName(name string) string {
	ident := strcase.UpperCamelCase(string(slice.Filter([]rune(name), is.Not(badIdentSymbol))))
	if len(ident) == 0 {
		return "X"
	} else if r := []rune(ident)[0]; !unicode.IsLetter(r) && r != '_' {
		ident = "X" + ident
	}
	return ident
}

func badIdentSymbol(ch rune) bool {
	return !(unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' || ch == ' ')
}
