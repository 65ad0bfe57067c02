package command

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/m4gshm/flexmap/logger"
)

// Context carries the command environment.
type Context struct {
	Out io.Writer
	Log *zap.SugaredLogger
	// ReadFile loads input files, os.ReadFile by default.
	ReadFile func(name string) ([]byte, error)
}

func NewContext(out io.Writer) *Context {
	return &Context{Out: out, Log: logger.Get(), ReadFile: os.ReadFile}
}

func (c *Context) readFile(name string) ([]byte, error) {
	if c.ReadFile != nil {
		return c.ReadFile(name)
	}
	return os.ReadFile(name)
}

func (c *Context) log() *zap.SugaredLogger {
	if c.Log != nil {
		return c.Log
	}
	return logger.Get()
}
