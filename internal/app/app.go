// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"fastxsplit-core/linker"
	"fastxsplit/internal/appcore"
	"fastxsplit/internal/cli"
	"fastxsplit/internal/cmdutil"
	"fastxsplit/internal/version"
	"fastxsplit/internal/writers"
)

// usage prints help to stdout and maps flush failures to exit codes.
func usage(fs *flag.FlagSet, stdout, stderr io.Writer, code int) int {
	outw := bufio.NewWriter(stdout)
	fs.SetOutput(outw)
	fs.Usage()
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return code
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return cmdutil.ExitRuntime
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("fastx-split")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usage(fs, stdout, stderr, cmdutil.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(fs, stdout, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(fs, stdout, stderr, cmdutil.ExitConfig)
	}

	if opts.Version {
		if _, e := fmt.Fprintf(stdout, "fastx-split version %s\n", version.Version); e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return cmdutil.ExitRuntime
		}
		return cmdutil.ExitOK
	}

	// A bad linker spec is fatal before any input is opened.
	spec, err := linker.Parse(opts.Prefix, opts.Suffix)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitConfig
	}

	coreOpts := appcore.Options{
		Inputs:          opts.Inputs,
		Output:          opts.Output,
		Out:             opts.Out,
		TagStyle:        opts.TagStyle,
		Header:          opts.Header,
		ShortOutput:     opts.ShortOutput,
		Samples:         opts.Samples,
		DemuxDir:        opts.DemuxDir,
		IndexMismatches: opts.IndexMismatches,
		Stats:           opts.Stats,
		StatsFormat:     opts.StatsFormat,
		UMICap:          opts.UMICap,
		Threads:         opts.Threads,
		Quiet:           opts.Quiet,
		Verbose:         opts.Verbose,
	}
	return appcore.Run(parent, stdout, stderr, coreOpts, spec)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
