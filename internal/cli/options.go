// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"fastxsplit/internal/stats"
	"fastxsplit/internal/version"
	"fastxsplit/internal/writers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Linker
	Prefix string
	Suffix string

	// Input
	Inputs []string

	// Output
	Output      string // output format
	Out         string // output path, "-" for stdout
	TagStyle    string
	Header      bool // true unless --no-header
	ShortOutput string

	// Demultiplexing
	Samples         string
	DemuxDir        string
	IndexMismatches int

	// Statistics
	Stats       string
	StatsFormat string
	UMICap      int

	// Performance
	Threads int

	// Misc
	Quiet   bool
	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: split linker UMIs and sample indexes out of FASTQ reads

Version: %s

Usage of %s:
  %s --prefix NNNNN --suffix IIII [options] reads.fq[.gz] ...

Linker specs use N for a UMI base and I for a sample index base.

`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments are FASTQ inputs; globs are expanded.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Linker
	fs.StringVar(&opt.Prefix, "prefix", "", "linker prefix spec, N=UMI I=sample index (e.g. NNNNN) [\"\"]")
	fs.StringVar(&opt.Suffix, "suffix", "", "linker suffix spec, N=UMI I=sample index (e.g. IIII) [\"\"]")

	// Input
	var in stringSlice
	fs.Var(&in, "fastq", "FASTQ file(s) (repeatable, gzip ok, '-' for stdin) [*]")

	// Output
	fs.StringVar(&opt.Output, "output", writers.FormatFASTQ, "output format: "+strings.Join(writers.Formats(), " | ")+" [fastq]")
	fs.StringVar(&opt.Out, "out", "-", "output file ('-' = stdout) [-]")
	fs.StringVar(&opt.TagStyle, "tag-style", writers.TagName, "FASTQ header tags: name (@id:UMI:INDEX) | comment (RX:Z/BC:Z) [name]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV [false]")
	fs.StringVar(&opt.ShortOutput, "short-output", "", "write reads shorter than the linker here instead of dropping them")

	// Demultiplexing
	fs.StringVar(&opt.Samples, "samples", "", "sample sheet: 'name index' per line")
	fs.StringVar(&opt.DemuxDir, "demux-dir", "", "write <sample>.fastq.gz per sample here (requires --samples)")
	fs.IntVar(&opt.IndexMismatches, "index-mismatches", 0, "max sample index mismatches for a unique match [0]")

	// Statistics
	fs.StringVar(&opt.Stats, "stats", "", "write run statistics to this file ('-' = stderr)")
	fs.StringVar(&opt.StatsFormat, "stats-format", stats.FormatText, "statistics format: text | json [text]")
	fs.IntVar(&opt.UMICap, "umi-cap", 0, "max UMIs remembered per sample index for distinct counts (0 = 200000) [0]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings and summary [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := splitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	inputs, err := expandGlobs(append(in, posArgs...))
	if err != nil {
		return opt, err
	}
	opt.Inputs = inputs

	// Validation
	if len(opt.Inputs) == 0 {
		return opt, errors.New("at least one FASTQ input is required")
	}
	stdin := 0
	for _, p := range opt.Inputs {
		if p == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return opt, errors.New("stdin ('-') may be given only once")
	}
	if !validFormat(opt.Output) {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.TagStyle != writers.TagName && opt.TagStyle != writers.TagComment {
		return opt, fmt.Errorf("invalid --tag-style %q", opt.TagStyle)
	}
	if opt.DemuxDir != "" && opt.Samples == "" {
		return opt, errors.New("--demux-dir requires --samples")
	}
	if opt.Samples != "" && opt.DemuxDir == "" {
		return opt, errors.New("--samples requires --demux-dir")
	}
	if opt.IndexMismatches < 0 {
		return opt, errors.New("--index-mismatches must be ≥ 0")
	}
	if opt.StatsFormat != stats.FormatText && opt.StatsFormat != stats.FormatJSON {
		return opt, fmt.Errorf("invalid --stats-format %q", opt.StatsFormat)
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.UMICap < 0 {
		return opt, errors.New("--umi-cap must be ≥ 0")
	}
	if err := checkSinks(opt); err != nil {
		return opt, err
	}
	return opt, nil
}

// checkSinks rejects two outputs sharing a destination; each sink buffers
// on its own, so the bytes would interleave or one file would truncate the
// other.
func checkSinks(opt Options) error {
	type sink struct{ flag, path string }
	var sinks []sink
	if opt.DemuxDir == "" {
		out := opt.Out
		if out == "" {
			out = "-"
		}
		sinks = append(sinks, sink{"--out", out})
	}
	if opt.ShortOutput != "" {
		sinks = append(sinks, sink{"--short-output", opt.ShortOutput})
	}
	if opt.Stats != "" && opt.Stats != "-" { // "-" is stderr
		sinks = append(sinks, sink{"--stats", opt.Stats})
	}
	seen := map[string]string{}
	for _, s := range sinks {
		key := s.path
		if key != "-" {
			key = filepath.Clean(key)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s both write to %s", prev, s.flag, s.path)
		}
		seen[key] = s.flag
	}
	return nil
}

func validFormat(f string) bool {
	for _, k := range writers.Formats() {
		if k == f {
			return true
		}
	}
	return false
}
