// internal/writers/tsv.go
package writers

import (
	"bufio"
	"io"
	"strconv"
)

// TSVHeader is the column header for the tsv format.
const TSVHeader = "read_id\tumi\tsample_index\tlength\tsequence\tquality\tsample"

func init() {
	Register(FormatTSV, func(out io.Writer, opt Options) (RecordWriter, error) {
		t := &tsvWriter{w: bufio.NewWriterSize(out, 64<<10)}
		if opt.Header {
			t.w.WriteString(TSVHeader + "\n")
		}
		return t, nil
	})
}

type tsvWriter struct{ w *bufio.Writer }

func (t *tsvWriter) Write(r Read) error {
	w := t.w
	w.WriteString(r.ID)
	w.WriteByte('\t')
	writeField(w, r.UMI)
	w.WriteByte('\t')
	writeField(w, r.SampleIndex)
	w.WriteByte('\t')
	w.WriteString(strconv.Itoa(len(r.Sequence)))
	w.WriteByte('\t')
	writeField(w, r.Sequence)
	w.WriteByte('\t')
	writeField(w, r.Quality)
	w.WriteByte('\t')
	writeField(w, []byte(r.Sample))
	return w.WriteByte('\n')
}

func (t *tsvWriter) Close() error { return t.w.Flush() }

// writeField writes "-" for empty values so columns never collapse.
func writeField(w *bufio.Writer, b []byte) {
	if len(b) == 0 {
		w.WriteByte('-')
		return
	}
	w.Write(b)
}
