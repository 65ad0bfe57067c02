package generator

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m4gshm/gollections/predicate/is"
	"github.com/m4gshm/gollections/slice"
)

const (
	SchemaImport  = "github.com/m4gshm/flexmap/schema"
	schemaPackage = "schema"
	// DefaultPackage is used when the package name cannot be derived from the output directory.
	DefaultPackage = "model"
)

func badSymbol(ch rune) bool {
	return !('a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		ch == '_' || ch >= utf8.RuneSelf && (unicode.IsLetter(ch)))
}

// PackageName derives a package name from the directory of a generated file.
func PackageName(dir string) string {
	base := filepath.Base(dir)
	name := strings.ToLower(string(slice.Filter([]rune(base), is.Not(badSymbol))))
	if len(name) == 0 || name == schemaPackage {
		return DefaultPackage
	}
	return name
}
