// internal/stats/stats.go
package stats

import (
	"sort"

	"fastxsplit-core/linker"
	"fastxsplit/internal/runutil"
)

// Stats tallies split outcomes for one run. It is not safe for concurrent
// use; the pipeline calls it from the ordered collector.
type Stats struct {
	spec   *linker.Spec
	umiCap int

	total       int
	split       int
	tooShort    int
	insertBases int64
	indexes     map[string]*indexTally
}

type indexTally struct {
	reads int
	umis  *runutil.LRUSet[string]
	// distinct counts first sightings; it can over-count once the set evicts.
	distinct int
}

// New returns an empty tally for spec. umiCap bounds the number of UMIs
// remembered per sample index (0 uses runutil.DefaultLRUCapacity).
func New(spec *linker.Spec, umiCap int) *Stats {
	return &Stats{spec: spec, umiCap: umiCap, indexes: make(map[string]*indexTally)}
}

// Tally records one record's outcome.
func (s *Stats) Tally(sp linker.Split, ok bool) {
	s.total++
	if !ok {
		s.tooShort++
		return
	}
	s.split++
	s.insertBases += int64(len(sp.Sequence))

	key := string(sp.SampleIndex)
	it := s.indexes[key]
	if it == nil {
		it = &indexTally{umis: runutil.NewLRUSet[string](s.umiCap)}
		s.indexes[key] = it
	}
	it.reads++
	if len(sp.UMI) > 0 && !it.umis.Add(string(sp.UMI)) {
		it.distinct++
	}
}

func (s *Stats) Total() int    { return s.total }
func (s *Stats) Split() int    { return s.split }
func (s *Stats) TooShort() int { return s.tooShort }

// IndexCount is the per-sample-index summary.
type IndexCount struct {
	SampleIndex  string `json:"sample_index"`
	Reads        int    `json:"reads"`
	DistinctUMIs int    `json:"distinct_umis"`
}

// Report is the serializable run summary.
type Report struct {
	Prefix            string       `json:"prefix"`
	Suffix            string       `json:"suffix"`
	PrefixLength      int          `json:"prefix_length"`
	SuffixLength      int          `json:"suffix_length"`
	UMILength         int          `json:"umi_length"`
	SampleIndexLength int          `json:"sample_index_length"`
	Total             int          `json:"total"`
	Split             int          `json:"split"`
	TooShort          int          `json:"too_short"`
	MeanInsertLength  float64      `json:"mean_insert_length"`
	Indexes           []IndexCount `json:"indexes"`
}

// Report snapshots the tally. Indexes are ordered by read count (desc),
// then sample index.
func (s *Stats) Report() Report {
	r := Report{
		Prefix:            s.spec.Prefix(),
		Suffix:            s.spec.Suffix(),
		PrefixLength:      s.spec.PrefixLength(),
		SuffixLength:      s.spec.SuffixLength(),
		UMILength:         s.spec.UMILength(),
		SampleIndexLength: s.spec.SampleIndexLength(),
		Total:             s.total,
		Split:             s.split,
		TooShort:          s.tooShort,
		Indexes:           make([]IndexCount, 0, len(s.indexes)),
	}
	if s.split > 0 {
		r.MeanInsertLength = float64(s.insertBases) / float64(s.split)
	}
	for k, v := range s.indexes {
		r.Indexes = append(r.Indexes, IndexCount{SampleIndex: k, Reads: v.reads, DistinctUMIs: v.distinct})
	}
	sort.Slice(r.Indexes, func(i, j int) bool {
		a, b := r.Indexes[i], r.Indexes[j]
		if a.Reads != b.Reads {
			return a.Reads > b.Reads
		}
		return a.SampleIndex < b.SampleIndex
	})
	return r
}
