// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"fastxsplit/pkg/api"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

func init() {
	Register(FormatJSONL, func(out io.Writer, _ Options) (RecordWriter, error) {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false) // quality strings contain < > &
		return &jsonlWriter{bw: bw, enc: enc}, nil
	})
}

type jsonlWriter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// ToAPISplit converts a Read to the v1 wire type.
func ToAPISplit(r Read) api.SplitV1 {
	return api.SplitV1{
		ReadID:      r.ID,
		UMI:         string(r.UMI),
		SampleIndex: string(r.SampleIndex),
		Sequence:    string(r.Sequence),
		Quality:     string(r.Quality),
		Sample:      r.Sample,
		SourceFile:  r.Source,
	}
}

func (j *jsonlWriter) Write(r Read) error { return j.enc.Encode(ToAPISplit(r)) }

func (j *jsonlWriter) Close() error {
	err := j.bw.Flush()
	// Drop the reference to the output before pooling.
	j.bw.Reset(io.Discard)
	bwPool.Put(j.bw)
	return err
}
