// internal/stats/write.go
package stats

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders r in the given format.
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown stats format %q", format)
	}
}

func writeText(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w,
		"# linker prefix=%s suffix=%s umi_length=%d sample_index_length=%d\n"+
			"total\t%d\nsplit\t%d\ntoo_short\t%d\nmean_insert_length\t%.2f\n",
		orDash(r.Prefix), orDash(r.Suffix), r.UMILength, r.SampleIndexLength,
		r.Total, r.Split, r.TooShort, r.MeanInsertLength,
	); err != nil {
		return err
	}
	if len(r.Indexes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "# sample_index\treads\tdistinct_umis"); err != nil {
		return err
	}
	for _, ic := range r.Indexes {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", orDash(ic.SampleIndex), ic.Reads, ic.DistinctUMIs); err != nil {
			return err
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
