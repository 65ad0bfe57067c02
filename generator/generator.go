package generator

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/m4gshm/gollections/op"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"github.com/m4gshm/flexmap/logger"
	"github.com/m4gshm/flexmap/unique"
)

const header = "// Code generated by flexmap build-class. DO NOT EDIT.\n"

const defaultTabWidth = 8

// Generator renders inferred classes as Go source declaring schemas.
type Generator struct {
	cfg   *Config
	head  bytes.Buffer
	body  bytes.Buffer
	names *unique.Names
	vars  map[string]string
}

func New(cfg *Config) *Generator {
	return &Generator{
		cfg:   cfg,
		names: unique.NewNamesWith(unique.PreInit(RegistryVar, schemaPackage)),
		vars:  map[string]string{},
	}
}

func (g *Generator) writeHead(format string, args ...any) {
	_, _ = fmt.Fprintf(&g.head, format, args...)
}

func (g *Generator) writeBody(format string, args ...any) {
	_, _ = fmt.Fprintf(&g.body, format, args...)
}

// Generate renders the classes in reverse discovery order so that nested classes precede their users.
func (g *Generator) Generate(classes []*ClassDef) {
	for _, c := range classes {
		g.vars[c.Name] = g.names.Get(LegalIdentName(c.Name))
	}
	schemas := g.cfg.emits(EmitSchemas)
	registry := schemas && g.cfg.emits(EmitRegistry)

	g.writeHead(header + "\npackage %s\n", op.IfElse(len(g.cfg.Package) > 0, g.cfg.Package, DefaultPackage))
	if schemas {
		g.writeHead("\nimport %s\n", strconv.Quote(SchemaImport))
	}
	if registry {
		g.writeBody("\nvar %s = %s.NewRegistry()\n", RegistryVar, schemaPackage)
	}
	if g.cfg.emits(EmitKeys) {
		g.generateKeys(classes)
	}
	if schemas {
		for i := len(classes) - 1; i >= 0; i-- {
			g.generateClass(classes[i], registry)
		}
	}
	logger.Debugw("classes generated", "count", len(classes), "package", g.cfg.Package)
}

func (g *Generator) generateClass(c *ClassDef, registry bool) {
	declare := op.IfElse(g.cfg.Inherit, "MustSubclass", "MustProcess")
	g.writeBody("\nvar %s = %s.%s(%s.Declare(%s)", g.vars[c.Name], schemaPackage, declare, schemaPackage, strconv.Quote(c.Name))
	for _, f := range c.Fields {
		g.writeBody(".\n\tField(%s, %s", strconv.Quote(f.Name), f.Type.Expr(g.classVar))
		if g.cfg.AlwaysExplicitKey || f.Name != f.Key {
			g.writeBody(", %s.F(%s.Key(%s))", schemaPackage, schemaPackage, strconv.Quote(f.Key))
		}
		g.writeBody(")")
	}
	if registry {
		g.writeBody(", %s.WithRegistry(%s)", schemaPackage, RegistryVar)
	}
	g.writeBody(")\n")
}

func (g *Generator) generateKeys(classes []*ClassDef) {
	g.writeBody("\nconst (\n")
	for i := len(classes) - 1; i >= 0; i-- {
		c := classes[i]
		for _, f := range c.Fields {
			name := g.names.Get(g.vars[c.Name] + LegalIdentName(f.Name) + "Key")
			g.writeBody("\t%s = %s\n", name, strconv.Quote(f.Key))
		}
	}
	g.writeBody(")\n")
}

func (g *Generator) classVar(class string) string {
	if v, ok := g.vars[class]; ok {
		return v
	}
	return LegalIdentName(class)
}

// Src returns the unformatted source.
func (g *Generator) Src() []byte {
	out := bytes.Buffer{}
	out.Write(g.head.Bytes())
	out.Write(g.body.Bytes())
	return out.Bytes()
}

// FormatSrc returns the formatted source. Indentation is tabs unless the config sets a spaces width.
func (g *Generator) FormatSrc(filename string) ([]byte, error) {
	src := g.Src()
	opts := &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   defaultTabWidth,
	}
	fmtSrc, err := imports.Process(filename, src, opts)
	if err != nil {
		return src, errors.Wrap(err, "format generated source")
	}
	if g.cfg.Indent > 0 {
		fmtSrc = spacesIndent(fmtSrc, g.cfg.Indent)
	}
	return fmtSrc, nil
}

// spacesIndent replaces the leading tabs of every line. Formatted source indents by tabs only.
func spacesIndent(src []byte, width int) []byte {
	indent := bytes.Repeat([]byte{' '}, width)
	out := bytes.Buffer{}
	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, "\t")
		out.Write(bytes.Repeat(indent, len(line)-len(trimmed)))
		out.Write(trimmed)
	}
	return out.Bytes()
}

// Source builds the classes from the documents and renders the formatted source.
func Source(cfg *Config, rootClass string, docs []any) ([]byte, error) {
	b := NewBuilder(cfg, nil)
	if err := b.BuildAll(rootClass, docs); err != nil {
		return nil, err
	}
	g := New(cfg)
	g.Generate(b.Classes())
	return g.FormatSrc("")
}
