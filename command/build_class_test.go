package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/m4gshm/flexmap/use"
)

func run(t *testing.T, context *Context, args ...string) error {
	t.Helper()
	cmd := Get("build-class")
	require.NotNil(t, cmd)
	_, err := cmd.Parse(args)
	require.NoError(t, err)
	return cmd.Run(context)
}

func testContext(files map[string][]byte) (*Context, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Context{
		Out: out,
		Log: zap.NewNop().Sugar(),
		ReadFile: func(name string) ([]byte, error) {
			if data, ok := files[name]; ok {
				return data, nil
			}
			return nil, os.ErrNotExist
		},
	}, out
}

func Test_Supported(t *testing.T) {
	assert.Equal(t, []string{"build-class"}, Supported())
	assert.Nil(t, Get("unknown"))
}

func Test_BuildClassFromString(t *testing.T) {
	context, out := testContext(nil)
	require.NoError(t, run(t, context, "-name", "A", "-str", `{"a": 1, "c": {"d": "x"}}`))

	src := out.String()
	assert.Contains(t, src, "package model\n")
	assert.Contains(t, src, `var C = schema.MustSubclass(schema.Declare("C").`)
	assert.Contains(t, src, `Field("c", schema.ObjectOf(C)))`)
}

func Test_BuildClassFromListOfDocuments(t *testing.T) {
	context, out := testContext(nil)
	require.NoError(t, run(t, context, "-name", "A", "-use-decorator", "-str", `[{"a": 1}, {"b": true}]`))

	src := out.String()
	assert.Contains(t, src, `var A = schema.MustProcess(schema.Declare("A").`)
	assert.Contains(t, src, `Field("a", schema.Int).`)
	assert.Contains(t, src, `Field("b", schema.Bool))`)
}

func Test_BuildClassFromYAMLFiles(t *testing.T) {
	context, out := testContext(map[string][]byte{
		"a.yaml": []byte("a: 1\n---\nb: [x]\n"),
		"b.json": []byte(`{"c": 1.5}`),
	})
	require.NoError(t, run(t, context, "-name", "A", "-file", "a.yaml", "-file", "b.json"))

	src := out.String()
	assert.Contains(t, src, `Field("a", schema.Int).`)
	assert.Contains(t, src, `Field("bs", schema.ListOf(schema.String), schema.F(schema.Key("b"))).`)
	assert.Contains(t, src, `Field("c", schema.Float))`)
}

func Test_BuildClassUsage(t *testing.T) {
	cmd := Get("build-class")
	require.NotNil(t, cmd)
	out := &bytes.Buffer{}
	cmd.flag.SetOutput(out)
	cmd.PrintUsage()

	usage := out.String()
	assert.Contains(t, usage, "-name")
	assert.Contains(t, usage, "Examples:")
	assert.Contains(t, usage, "build-class -name Order -file order.json -out model/order.go")
}

func Test_BuildClassEncoding(t *testing.T) {
	context, out := testContext(map[string][]byte{
		"latin.json": []byte("{\"caf\xe9\": 1}"),
	})
	require.NoError(t, run(t, context, "-name", "A", "-file", "latin.json", "-encoding", "iso-8859-1"))

	assert.Contains(t, out.String(), `Field("café", schema.Int))`)
}

func Test_BuildClassOutputFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, os.Mkdir(dir, 0o755))
	output := filepath.Join(dir, "a.go")

	context, out := testContext(nil)
	require.NoError(t, run(t, context, "-name", "A", "-str", `{"a": 1}`, "-out", output))

	assert.Empty(t, out.String())
	src, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package models\n")
}

func Test_BuildClassInputErrors(t *testing.T) {
	cases := map[string][]string{
		"not an object":    {"-name", "A", "-str", `[1]`},
		"empty list":       {"-name", "A", "-str", `[]`},
		"broken json":      {"-name", "A", "-str", `{"a":`},
		"unknown encoding": {"-name", "A", "-file", "a.json", "-encoding", "klingon"},
		"no name":          {"-str", `{}`},
		"no input":         {"-name", "A"},
		"both inputs":      {"-name", "A", "-str", `{}`, "-file", "a.json"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			context, _ := testContext(map[string][]byte{"a.json": []byte(`{}`)})
			var uerr *use.Error
			assert.ErrorAs(t, run(t, context, args...), &uerr)
		})
	}

	context, _ := testContext(nil)
	assert.ErrorIs(t, run(t, context, "-name", "A", "-file", "missing.json"), os.ErrNotExist)
}
