// internal/writers/read.go
package writers

// Read is a split record ready to be re-emitted. Sequence and Quality may
// alias the source record; writers never modify them.
type Read struct {
	Source      string
	ID          string
	Desc        string
	UMI         []byte
	SampleIndex []byte
	Sequence    []byte
	Quality     []byte // Phred+33
	Sample      string // demux assignment, empty when not demultiplexing
}

// Tag styles for re-emitted FASTQ headers.
const (
	// TagName appends ":UMI:INDEX" to the read ID.
	TagName = "name"
	// TagComment replaces the description with SAM-style RX/BC tags.
	TagComment = "comment"
)

// Options configures every writer. Zero value is usable.
type Options struct {
	TagStyle string // TagName (default) | TagComment
	Header   bool   // TSV column header
	Comment  string // free text recorded in SAM/BAM @CO

	// Linker layout, needed by the pretty format to restore read order.
	Prefix string
	Suffix string
}
