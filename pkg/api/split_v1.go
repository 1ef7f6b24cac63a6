// pkg/api/split_v1.go
package api

// SplitV1 is the stable JSON/JSONL schema for one split read.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SplitV1 struct {
	ReadID      string `json:"read_id"`
	UMI         string `json:"umi"`
	SampleIndex string `json:"sample_index"`
	Sequence    string `json:"sequence"`
	Quality     string `json:"quality"`
	Sample      string `json:"sample,omitempty"` // demux assignment
	SourceFile  string `json:"source_file,omitempty"`
}
