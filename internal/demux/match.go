// internal/demux/match.go
package demux

import (
	"bytes"
	"fmt"
)

// UnassignedName receives reads whose sample index matches no sample.
const UnassignedName = "unassigned"

// Matcher assigns sample indexes to samples. It is read-only after
// construction and safe for concurrent use.
type Matcher struct {
	samples  []Sample
	exact    map[string]int
	maxMM    int
	indexLen int
}

// NewMatcher checks that every index is indexLen long. maxMM allows that
// many Hamming mismatches when exactly one sample is closest.
func NewMatcher(samples []Sample, indexLen, maxMM int) (*Matcher, error) {
	if maxMM < 0 {
		return nil, fmt.Errorf("index mismatches must be ≥ 0")
	}
	m := &Matcher{samples: samples, exact: make(map[string]int, len(samples)), maxMM: maxMM, indexLen: indexLen}
	for i, s := range samples {
		if len(s.Index) != indexLen {
			return nil, fmt.Errorf("sample %q: index %s has length %d, linker sample index length is %d",
				s.Name, s.Index, len(s.Index), indexLen)
		}
		m.exact[s.Index] = i
	}
	return m, nil
}

// Samples returns the sheet in file order.
func (m *Matcher) Samples() []Sample { return m.samples }

// Match returns the sample for index, or ("", false).
func (m *Matcher) Match(index []byte) (Sample, bool) {
	if len(index) != m.indexLen {
		return Sample{}, false
	}
	if i, ok := m.exact[string(bytes.ToUpper(index))]; ok {
		return m.samples[i], true
	}
	if m.maxMM == 0 {
		return Sample{}, false
	}
	best, bestMM, tie := -1, m.maxMM+1, false
	for i, s := range m.samples {
		mm := hamming(index, s.Index, bestMM)
		switch {
		case mm < bestMM:
			best, bestMM, tie = i, mm, false
		case mm == bestMM:
			tie = true
		}
	}
	if best < 0 || tie {
		return Sample{}, false
	}
	return m.samples[best], true
}

// hamming counts mismatches (case-insensitive, N never matches), stopping
// once the count exceeds limit.
func hamming(a []byte, b string, limit int) int {
	mm := 0
	for i := 0; i < len(a); i++ {
		x := a[i] &^ 0x20
		if x == 'N' || x != b[i] {
			mm++
			if mm > limit {
				return mm
			}
		}
	}
	return mm
}
