package command

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/m4gshm/flexmap/dict"
	"github.com/m4gshm/flexmap/generator"
	"github.com/m4gshm/flexmap/params"
	"github.com/m4gshm/flexmap/use"
)

func NewBuildClass() *Command {
	const (
		cmdName = "build-class"
	)
	flagSet := flag.NewFlagSet(cmdName, flag.ExitOnError)
	config, err := params.NewBuildClass(flagSet)
	if err != nil {
		panic(err)
	}
	c := New(
		cmdName, "generates schema declarations from example JSON or YAML documents",
		flagSet,
		func(context *Context) error {
			if err := config.Validate(); err != nil {
				return err
			}
			docs, err := loadDocuments(context, config)
			if err != nil {
				return err
			}
			genConfig := config.Generator()
			if len(genConfig.Package) == 0 {
				genConfig.Package = generator.DefaultPackage
				if len(config.Output) > 0 {
					if outDir, err := filepath.Abs(filepath.Dir(config.Output)); err == nil {
						genConfig.Package = generator.PackageName(outDir)
					}
				}
			}

			b := generator.NewBuilder(genConfig, context.log())
			if err := b.BuildAll(config.Name, docs); err != nil {
				return use.Err(err.Error())
			}
			g := generator.New(genConfig)
			g.Generate(b.Classes())
			src, err := g.FormatSrc(config.Output)
			if err != nil {
				return err
			}
			if len(config.Output) == 0 {
				_, err = context.Out.Write(src)
				return err
			}
			context.log().Infof("write %s", config.Output)
			return errors.Wrapf(os.WriteFile(config.Output, src, 0o644), "write %s", config.Output)
		},
	)
	c.manual =
		`Examples:
	` + cmdName + ` -name Order -file order.json -out model/order.go - schemas of order.json written to package 'model'
	` + cmdName + ` -name Event -file events.yaml -use-decorator -emit schemas -emit registry - declare by schema.MustProcess and register every schema
	` + cmdName + ` -name Item -str '[{"id": 1}, {"id": 2, "tags": ["a"]}]' -emit keys - key constants only, every list element is a document`
	return c
}

func loadDocuments(context *Context, config *params.BuildClass) ([]any, error) {
	if len(config.Str) > 0 {
		return decodeDocuments([]byte(config.Str), detectFormat(config.Format, "", []byte(config.Str)), "-str")
	}
	encoding, err := htmlindex.Get(config.Encoding)
	if err != nil {
		return nil, use.Err("unsupported encoding '" + config.Encoding + "'")
	}
	var docs []any
	for _, file := range config.Files {
		data, err := context.readFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		if data, err = encoding.NewDecoder().Bytes(data); err != nil {
			return nil, use.InputErr("decode "+config.Encoding+": "+err.Error(), file, -1)
		}
		fileDocs, err := decodeDocuments(data, detectFormat(config.Format, file, data), file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

// decodeDocuments decodes a JSON or YAML stream. A top-level list contributes its elements as documents.
func decodeDocuments(data []byte, format, source string) ([]any, error) {
	var (
		decoded []any
		err     error
	)
	if format == params.FormatYAML {
		decoded, err = dict.DecodeYAML(data)
	} else {
		decoded, err = dict.DecodeJSONAll(bytes.NewReader(data))
	}
	if err != nil {
		return nil, use.InputErr(err.Error(), source, -1)
	}
	var docs []any
	for _, doc := range decoded {
		if list, ok := doc.([]any); ok {
			docs = append(docs, list...)
		} else {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, use.InputErr("no data given", source, -1)
	}
	for i, doc := range docs {
		if _, ok := doc.(*dict.Dict); !ok {
			return nil, use.InputErr("document is not an object", source, i)
		}
	}
	return docs, nil
}

func detectFormat(format, file string, data []byte) string {
	if format != params.FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return params.FormatYAML
	case ".json":
		return params.FormatJSON
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return params.FormatJSON
	}
	return params.FormatYAML
}
