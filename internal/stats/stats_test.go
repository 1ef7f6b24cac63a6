package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fastxsplit-core/linker"

	"github.com/grailbio/testutil/expect"
)

func split(spec *linker.Spec, seq string) (linker.Split, bool) {
	return spec.SplitBytes([]byte(seq), bytes.Repeat([]byte{'I'}, len(seq)))
}

func TestTallyAndReport(t *testing.T) {
	spec := linker.MustParse("NN", "I")
	s := New(spec, 0)
	for _, seq := range []string{"AAxxxC", "AAyyC", "CCzzzC", "GGG", "TTqqqA", "A"} {
		sp, ok := split(spec, seq)
		s.Tally(sp, ok)
	}
	expect.EQ(t, s.Total(), 6)
	expect.EQ(t, s.Split(), 5)
	expect.EQ(t, s.TooShort(), 1)

	r := s.Report()
	expect.EQ(t, r.UMILength, 2)
	expect.EQ(t, r.SampleIndexLength, 1)
	expect.EQ(t, r.PrefixLength, 2)
	expect.EQ(t, r.SuffixLength, 1)
	expect.EQ(t, r.Indexes, []IndexCount{
		{SampleIndex: "C", Reads: 3, DistinctUMIs: 2},
		{SampleIndex: "A", Reads: 1, DistinctUMIs: 1},
		{SampleIndex: "G", Reads: 1, DistinctUMIs: 1},
	})
	// inserts: 3,2,3,0,3
	expect.EQ(t, r.MeanInsertLength, 11.0/5.0)
}

func TestWriteFormats(t *testing.T) {
	spec := linker.MustParse("N", "")
	s := New(spec, 0)
	sp, ok := split(spec, "AC")
	s.Tally(sp, ok)

	var txt bytes.Buffer
	expect.NoError(t, Write(&txt, FormatText, s.Report()))
	expect.True(t, strings.Contains(txt.String(), "too_short\t0\n"))
	expect.True(t, strings.Contains(txt.String(), "suffix=-"))
	expect.True(t, strings.Contains(txt.String(), "-\t1\t1\n"))

	var js bytes.Buffer
	expect.NoError(t, Write(&js, FormatJSON, s.Report()))
	var back Report
	expect.NoError(t, json.Unmarshal(js.Bytes(), &back))
	expect.EQ(t, back.Split, 1)
	expect.EQ(t, back.Prefix, "N")

	expect.True(t, Write(&js, "yaml", s.Report()) != nil)
}
