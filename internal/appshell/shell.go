// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grailbio/base/log"

	"fastxsplit/internal/cmdutil"
)

// RunFunc is a CLI entry point: it parses argv, does the work and returns
// an exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn under a context that SIGINT/SIGTERM cancel, then exits.
// A bare invocation prints help.
func Main(fn RunFunc) {
	os.Exit(run(fn, os.Args[1:], os.Stdout, os.Stderr))
}

func run(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	// Package-level logging; runs pass their own logger down.
	log.SetOutputter(cmdutil.NewLogger(stderr, false, false))

	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCancelled
	}
	return code
}
