// internal/writers/pretty.go
package writers

import (
	"bufio"
	"io"

	"fastxsplit/internal/pretty"
)

func init() {
	Register(FormatPretty, func(out io.Writer, opt Options) (RecordWriter, error) {
		return &prettyWriter{w: bufio.NewWriter(out), prefix: opt.Prefix, suffix: opt.Suffix}, nil
	})
}

// prettyWriter draws each read as an ASCII block for eyeballing layouts.
type prettyWriter struct {
	w              *bufio.Writer
	prefix, suffix string
}

func (p *prettyWriter) Write(r Read) error {
	s, err := pretty.Render(pretty.Block{
		ID:          r.ID,
		Prefix:      p.prefix,
		Suffix:      p.suffix,
		UMI:         r.UMI,
		SampleIndex: r.SampleIndex,
		Sequence:    r.Sequence,
	}, pretty.DefaultOptions)
	if err != nil {
		return err
	}
	_, err = p.w.WriteString(s)
	return err
}

func (p *prettyWriter) Close() error { return p.w.Flush() }
