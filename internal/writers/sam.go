// internal/writers/sam.go
package writers

import (
	"fmt"
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

var (
	tagUMI         = sam.NewTag("RX")
	tagSampleIndex = sam.NewTag("BC")
)

func init() {
	Register(FormatSAM, func(out io.Writer, opt Options) (RecordWriter, error) {
		h, err := unmappedHeader(opt)
		if err != nil {
			return nil, err
		}
		w, err := sam.NewWriter(out, h, sam.FlagDecimal)
		if err != nil {
			return nil, fmt.Errorf("sam header: %w", err)
		}
		return &samWriter{write: w.Write}, nil
	})
	Register(FormatBAM, func(out io.Writer, opt Options) (RecordWriter, error) {
		h, err := unmappedHeader(opt)
		if err != nil {
			return nil, err
		}
		w, err := bam.NewWriter(out, h, 1)
		if err != nil {
			return nil, fmt.Errorf("bam header: %w", err)
		}
		return &samWriter{write: w.Write, close: w.Close}, nil
	})
}

func unmappedHeader(opt Options) (*sam.Header, error) {
	h, err := sam.NewHeader(nil, nil)
	if err != nil {
		return nil, err
	}
	h.Version = "1.6"
	h.SortOrder = sam.Unsorted
	if opt.Comment != "" {
		h.Comments = append(h.Comments, opt.Comment)
	}
	return h, nil
}

// samWriter emits unmapped records carrying the UMI in RX and the sample
// index in BC, the SAM-spec tags for both.
type samWriter struct {
	write func(*sam.Record) error
	close func() error
}

func (s *samWriter) Write(r Read) error {
	rec, err := UnmappedRecord(r)
	if err != nil {
		return err
	}
	return s.write(rec)
}

func (s *samWriter) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// UnmappedRecord converts r to an unmapped SAM record. Qualities are
// decoded from Phred+33.
func UnmappedRecord(r Read) (*sam.Record, error) {
	qual := make([]byte, len(r.Quality))
	for i, q := range r.Quality {
		if q < 33 {
			return nil, fmt.Errorf("read %q: quality byte %d below Phred+33 range", r.ID, q)
		}
		qual[i] = q - 33
	}
	var aux []sam.Aux
	for _, kv := range []struct {
		tag sam.Tag
		val string
	}{
		{tagUMI, string(r.UMI)},
		{tagSampleIndex, string(r.SampleIndex)},
	} {
		if kv.val == "" {
			continue
		}
		a, err := sam.NewAux(kv.tag, kv.val)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", r.ID, err)
		}
		aux = append(aux, a)
	}
	if len(r.Sequence) == 0 {
		// Reads exactly as long as the linker leave no insert. NewRecord
		// refuses empty sequences; the writers emit '*' for SEQ and QUAL.
		return &sam.Record{Name: r.ID, Pos: -1, MatePos: -1, Flags: sam.Unmapped, AuxFields: aux}, nil
	}
	rec, err := sam.NewRecord(r.ID, nil, nil, -1, -1, 0, 0, nil, r.Sequence, qual, aux)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", r.ID, err)
	}
	rec.Flags = sam.Unmapped
	return rec, nil
}
