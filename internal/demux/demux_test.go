package demux

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastxsplit/internal/writers"

	"github.com/grailbio/testutil/expect"
)

const sheet = `# name index
s1 acgt
s2 TTTT

s3 GGCC
`

func TestParseSheet(t *testing.T) {
	got, err := ParseSheet(strings.NewReader(sheet), "sheet.tsv")
	expect.NoError(t, err)
	expect.EQ(t, got, []Sample{{"s1", "ACGT"}, {"s2", "TTTT"}, {"s3", "GGCC"}})
}

func TestParseSheetErrors(t *testing.T) {
	cases := map[string]string{
		"fields":    "s1 ACGT extra\n",
		"dup-name":  "s1 ACGT\ns1 TTTT\n",
		"dup-index": "s1 ACGT\ns2 acgt\n",
		"reserved":  "unassigned ACGT\n",
		"slash":     "a/b ACGT\n",
		"empty":     "# nothing\n",
	}
	for name, in := range cases {
		if _, err := ParseSheet(strings.NewReader(in), "x"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestMatcher(t *testing.T) {
	samples, _ := ParseSheet(strings.NewReader(sheet), "x")

	_, err := NewMatcher(samples, 3, 0)
	expect.True(t, err != nil) // index length mismatch

	exact, err := NewMatcher(samples, 4, 0)
	expect.NoError(t, err)
	s, ok := exact.Match([]byte("acgt"))
	expect.True(t, ok)
	expect.EQ(t, s.Name, "s1")
	_, ok = exact.Match([]byte("ACGA"))
	expect.False(t, ok)
	_, ok = exact.Match([]byte("ACG"))
	expect.False(t, ok)

	fuzzy, err := NewMatcher(samples, 4, 1)
	expect.NoError(t, err)
	s, ok = fuzzy.Match([]byte("ACGA"))
	expect.True(t, ok)
	expect.EQ(t, s.Name, "s1")
	s, ok = fuzzy.Match([]byte("NTTT"))
	expect.True(t, ok)
	expect.EQ(t, s.Name, "s2")
	_, ok = fuzzy.Match([]byte("AAAA")) // 2+ mismatches from everything
	expect.False(t, ok)

	tie, err := NewMatcher([]Sample{{"a", "AAAA"}, {"b", "AAAT"}}, 4, 1)
	expect.NoError(t, err)
	_, ok = tie.Match([]byte("AAAC")) // one mismatch from both
	expect.False(t, ok)
	s, ok = tie.Match([]byte("AACA")) // a:1, b:2
	expect.True(t, ok)
	expect.EQ(t, s.Name, "a")
}

func readGz(t *testing.T, path string) string {
	t.Helper()
	fh, err := os.Open(path)
	expect.NoError(t, err)
	defer fh.Close()
	gz, err := gzip.NewReader(fh)
	expect.NoError(t, err)
	b, err := io.ReadAll(gz)
	expect.NoError(t, err)
	return string(b)
}

func TestDemuxer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m, err := NewMatcher([]Sample{{"s1", "AC"}, {"s2", "GT"}}, 2, 0)
	expect.NoError(t, err)
	d, err := New(dir, m, writers.TagName)
	expect.NoError(t, err)

	for _, r := range []writers.Read{
		{ID: "a", UMI: []byte("N"), SampleIndex: []byte("AC"), Sequence: []byte("TT"), Quality: []byte("II")},
		{ID: "b", SampleIndex: []byte("GT"), Sequence: []byte("C"), Quality: []byte("#")},
		{ID: "c", SampleIndex: []byte("CC"), Sequence: []byte("G"), Quality: []byte("!")},
		{ID: "d", SampleIndex: []byte("ac"), Sequence: []byte{}, Quality: []byte{}},
	} {
		expect.NoError(t, d.Write(r))
	}
	expect.NoError(t, d.Close())

	expect.EQ(t, d.Counts(), map[string]int{"s1": 2, "s2": 1, UnassignedName: 1})
	expect.EQ(t, readGz(t, filepath.Join(dir, "s1.fastq.gz")), "@a:N:AC\nTT\n+\nII\n@d::ac\n\n+\n\n")
	expect.EQ(t, readGz(t, filepath.Join(dir, "s2.fastq.gz")), "@b::GT\nC\n+\n#\n")
	expect.True(t, bytes.Contains([]byte(readGz(t, filepath.Join(dir, "unassigned.fastq.gz"))), []byte("@c::CC")))
}
