// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"
)

// Output formats.
const (
	FormatFASTQ  = "fastq"
	FormatTSV    = "tsv"
	FormatJSONL  = "jsonl"
	FormatSAM    = "sam"
	FormatBAM    = "bam"
	FormatPretty = "pretty"
)

// RecordWriter serializes reads one at a time. Close flushes any trailer
// but does not close the underlying io.Writer.
type RecordWriter interface {
	Write(Read) error
	Close() error
}

// Factory builds a RecordWriter over out.
type Factory func(out io.Writer, opt Options) (RecordWriter, error)

// Writer registry (format → factory). Formats register in init() blocks.
var registry = map[string]Factory{}

// Register adds or replaces (last wins) the factory for format.
func Register(format string, f Factory) { registry[format] = f }

// New dispatches to the registered factory.
func New(format string, out io.Writer, opt Options) (RecordWriter, error) {
	f, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return f(out, opt)
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Start spins up a writer goroutine for format. The returned channel must
// be closed by the caller; the error channel yields exactly one value once
// every read has been written (or the first error). After an error the
// goroutine keeps draining the input so senders never block.
func Start(out io.Writer, format string, opt Options, bufSize int) (chan<- Read, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan Read, bufSize)
	errCh := make(chan error, 1)

	go func() {
		rw, err := New(format, out, opt)
		if err == nil {
			for r := range in {
				if err = rw.Write(r); err != nil {
					break
				}
			}
			if cerr := rw.Close(); err == nil {
				err = cerr
			}
		}
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

// IsBrokenPipe reports whether err means the reader of our output went away,
// as when piping into head. Such errors end a run quietly.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
