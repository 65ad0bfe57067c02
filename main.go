package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/m4gshm/flexmap/command"
	"github.com/m4gshm/flexmap/logger"
	"github.com/m4gshm/flexmap/params"
	"github.com/m4gshm/flexmap/use"
)

func usage() {
	out := flag.CommandLine.Output()
	_, _ = fmt.Fprintf(out, "Usage of "+params.Name+":\n")
	_, _ = fmt.Fprintf(out, "\t"+params.Name+" [flags] command [command flags]\n")
	_, _ = fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
	command.PrintUsage(out)
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	logger.Init(*debug)
	code := run(flag.Args())
	logger.Sync()
	os.Exit(code)
}

func run(args []string) int {
	if len(args) == 0 {
		flag.Usage()
		return 2
	}
	cmd := command.Get(args[0])
	if cmd == nil {
		_, _ = fmt.Fprintf(os.Stderr, "unknown command '%s', supported: %v\n", args[0], command.Supported())
		return 2
	}
	if _, err := cmd.Parse(args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := cmd.Run(command.NewContext(os.Stdout)); err != nil {
		var uerr *use.Error
		if errors.As(err, &uerr) {
			_, _ = fmt.Fprintln(os.Stderr, uerr.Error())
			cmd.PrintUsage()
			return 2
		}
		logger.Get().Errorf("%s: %+v", args[0], err)
		return 1
	}
	return 0
}
