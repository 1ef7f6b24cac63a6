// core/linker/split.go
package linker

// Record is anything carrying a read sequence and its equal-length qualities.
type Record interface {
	Seq() []byte
	Qual() []byte
}

// Split is one read separated into linker-derived fields and the insert.
//
// UMI and SampleIndex are freshly allocated. Sequence and Quality are views
// into the source record and share its backing arrays.
type Split struct {
	UMI         []byte
	SampleIndex []byte
	Sequence    []byte
	Quality     []byte
}

// Split applies the specification to rec. It reports false when the read is
// shorter than the linker; that is an expected outcome, not an error.
func (s *Spec) Split(rec Record) (Split, bool) {
	return s.SplitBytes(rec.Seq(), rec.Qual())
}

// SplitBytes is Split over raw sequence and quality slices.
func (s *Spec) SplitBytes(seq, qual []byte) (Split, bool) {
	if len(seq) < s.LinkerLength() {
		return Split{}, false
	}

	out := Split{
		UMI:         make([]byte, 0, s.umiLength),
		SampleIndex: make([]byte, 0, s.sampleIndexLength),
	}
	for i, nt := range s.prefix {
		out.appendBase(nt, seq[i])
	}
	suffixStart := len(seq) - len(s.suffix)
	for i, nt := range s.suffix {
		out.appendBase(nt, seq[suffixStart+i])
	}

	start := len(s.prefix)
	out.Sequence = seq[start:suffixStart:suffixStart]
	out.Quality = qual[start:suffixStart:suffixStart]
	return out, true
}

func (sp *Split) appendBase(nt NtSpec, b byte) {
	switch nt {
	case UMI:
		sp.UMI = append(sp.UMI, b)
	case SampleIndex:
		sp.SampleIndex = append(sp.SampleIndex, b)
	}
}
