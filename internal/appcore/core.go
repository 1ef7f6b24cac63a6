// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fastxsplit-core/linker"
	"fastxsplit/internal/cmdutil"
	"fastxsplit/internal/demux"
	"fastxsplit/internal/pipeline"
	"fastxsplit/internal/runutil"
	"fastxsplit/internal/stats"
	"fastxsplit/internal/writers"
)

type Options struct {
	Inputs []string

	Output      string
	Out         string
	TagStyle    string
	Header      bool
	ShortOutput string

	Samples         string
	DemuxDir        string
	IndexMismatches int

	Stats       string
	StatsFormat string
	UMICap      int

	Threads int
	Quiet   bool
	Verbose bool
}

// Run splits every input with spec and returns the process exit code:
// 0 ok (or broken pipe), 2 bad configuration, 3 runtime failure,
// 130 cancelled.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, spec *linker.Spec) int {
	lg := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)
	lg.Debugf("linker %s: umi_length=%d sample_index_length=%d", spec, spec.UMILength(), spec.SampleIndexLength())

	var (
		dm          *demux.Demuxer
		sampleNames []string
	)
	if o.Samples != "" {
		if spec.SampleIndexLength() == 0 {
			fmt.Fprintln(stderr, "error: --samples needs a linker with sample index (I) positions")
			return cmdutil.ExitConfig
		}
		samples, err := demux.LoadSheet(o.Samples)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitConfig
		}
		m, err := demux.NewMatcher(samples, spec.SampleIndexLength(), o.IndexMismatches)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitConfig
		}
		for _, smp := range samples {
			sampleNames = append(sampleNames, smp.Name)
		}
		if dm, err = demux.New(o.DemuxDir, m, o.TagStyle); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitRuntime
		}
		lg.Debugf("demultiplexing %d samples into %s", len(samples), o.DemuxDir)
	}

	out, closeOut, err := openOutput(o.Out, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if dm != nil {
			_ = dm.Close()
		}
		return cmdutil.ExitRuntime
	}

	var short *bufio.Writer
	var closeShort func() error
	if o.ShortOutput != "" {
		w, c, err := openOutput(o.ShortOutput, stdout)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			_ = closeOut()
			if dm != nil {
				_ = dm.Close()
			}
			return cmdutil.ExitRuntime
		}
		short, closeShort = bufio.NewWriterSize(w, 64<<10), c
	}

	st := stats.New(spec, o.UMICap)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// With --demux-dir every read goes to a per-sample file instead of --out.
	var (
		inCh     chan<- writers.Read
		writeErr <-chan error
	)
	if dm == nil {
		inCh, writeErr = writers.Start(out, o.Output, writers.Options{
			TagStyle: o.TagStyle,
			Header:   o.Header,
			Comment:  "fastx-split linker " + spec.String(),
			Prefix:   spec.Prefix(),
			Suffix:   spec.Suffix(),
		}, runutil.WriterBuffer(o.Threads))
	}

	perr := pipeline.ForEachSplit(ctx, pipeline.Config{Threads: runutil.EffectiveThreads(o.Threads), Log: lg}, o.Inputs, spec, func(it pipeline.Item) error {
		st.Tally(it.Split, it.OK)
		if !it.OK {
			lg.Debugf("%s: read %s shorter than linker (%d < %d)", it.Source, it.Record.ID, len(it.Record.Sequence), spec.LinkerLength())
			if short != nil {
				return writers.WriteRawFASTQ(short, it.Record.Header(), it.Record.Sequence, it.Record.Quality)
			}
			return nil
		}
		r := writers.Read{
			Source:      it.Source,
			ID:          it.Record.ID,
			Desc:        it.Record.Desc,
			UMI:         it.Split.UMI,
			SampleIndex: it.Split.SampleIndex,
			Sequence:    it.Split.Sequence,
			Quality:     it.Split.Quality,
		}
		if dm != nil {
			return dm.Write(r)
		}
		select {
		case inCh <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	code := cmdutil.ExitOK
	fail := func(err error) {
		if err == nil || writers.IsBrokenPipe(err) || code != cmdutil.ExitOK {
			return
		}
		fmt.Fprintln(stderr, err)
		code = cmdutil.ExitRuntime
	}
	if dm != nil {
		fail(dm.Close())
	} else {
		close(inCh)
		fail(<-writeErr)
	}
	if short != nil {
		fail(short.Flush())
		fail(closeShort())
	}
	fail(closeOut())

	if perr != nil && !writers.IsBrokenPipe(perr) {
		if errors.Is(perr, context.Canceled) {
			return cmdutil.ExitCancelled
		}
		if code == cmdutil.ExitOK {
			fmt.Fprintln(stderr, perr)
			code = cmdutil.ExitRuntime
		}
	}
	if code != cmdutil.ExitOK {
		return code
	}

	if err := reportStats(o, st, stderr, lg); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitRuntime
	}
	if dm != nil {
		counts := dm.Counts()
		for _, s := range append(sampleNames, demux.UnassignedName) {
			lg.Infof("sample %s: %d reads", s, counts[s])
		}
	}
	if st.Split() == 0 && st.Total() > 0 {
		lg.Warnf("no read was long enough for linker %s", spec)
	}
	return cmdutil.ExitOK
}

func reportStats(o Options, st *stats.Stats, stderr io.Writer, lg *cmdutil.Logger) error {
	switch o.Stats {
	case "":
		lg.Infof("split %d of %d reads (%d shorter than linker)", st.Split(), st.Total(), st.TooShort())
		return nil
	case "-":
		return stats.Write(stderr, o.StatsFormat, st.Report())
	}
	fh, err := os.Create(o.Stats)
	if err != nil {
		return err
	}
	if err := stats.Write(fh, o.StatsFormat, st.Report()); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return fh, fh.Close, nil
}
