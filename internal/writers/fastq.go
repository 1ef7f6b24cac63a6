// internal/writers/fastq.go
package writers

import (
	"bufio"
	"io"
)

func init() {
	Register(FormatFASTQ, func(out io.Writer, opt Options) (RecordWriter, error) {
		return NewFASTQWriter(out, opt.TagStyle), nil
	})
}

// FASTQWriter re-emits trimmed reads with the UMI and sample index carried
// in the header.
type FASTQWriter struct {
	w        *bufio.Writer
	tagStyle string
}

func NewFASTQWriter(out io.Writer, tagStyle string) *FASTQWriter {
	return &FASTQWriter{w: bufio.NewWriterSize(out, 64<<10), tagStyle: tagStyle}
}

func (f *FASTQWriter) Write(r Read) error {
	w := f.w
	w.WriteByte('@')
	writeHeader(w, r, f.tagStyle)
	w.WriteByte('\n')
	w.Write(r.Sequence)
	w.WriteString("\n+\n")
	w.Write(r.Quality)
	return w.WriteByte('\n')
}

func (f *FASTQWriter) Close() error { return f.w.Flush() }

// writeHeader renders the header line without '@'. bufio.Writer errors are
// sticky and surface on the next write or Flush.
func writeHeader(w *bufio.Writer, r Read, style string) {
	w.WriteString(r.ID)
	switch style {
	case TagComment:
		if len(r.UMI) > 0 {
			w.WriteString("\tRX:Z:")
			w.Write(r.UMI)
		}
		if len(r.SampleIndex) > 0 {
			w.WriteString("\tBC:Z:")
			w.Write(r.SampleIndex)
		}
	default:
		w.WriteByte(':')
		w.Write(r.UMI)
		w.WriteByte(':')
		w.Write(r.SampleIndex)
		if r.Desc != "" {
			w.WriteByte(' ')
			w.WriteString(r.Desc)
		}
	}
}

// WriteRawFASTQ writes an untrimmed record, used for the short-read sink.
func WriteRawFASTQ(w io.Writer, header string, seq, qual []byte) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
		defer bw.Flush()
	}
	bw.WriteByte('@')
	bw.WriteString(header)
	bw.WriteByte('\n')
	bw.Write(seq)
	bw.WriteString("\n+\n")
	bw.Write(qual)
	return bw.WriteByte('\n')
}
