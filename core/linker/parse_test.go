package linker

import (
	"errors"
	"testing"
)

func TestParseLengths(t *testing.T) {
	cases := []struct {
		prefix, suffix      string
		umi, index, pre, suf int
	}{
		{"", "", 0, 0, 0, 0},
		{"NNN", "III", 3, 3, 3, 3},
		{"I", "NNNN", 4, 1, 1, 4},
		{"NN", "", 2, 0, 2, 0},
		{"", "IIN", 1, 2, 0, 3},
		{"NINIIN", "NI", 4, 4, 6, 2},
	}
	for _, c := range cases {
		s, err := Parse(c.prefix, c.suffix)
		if err != nil {
			t.Fatalf("Parse(%q,%q): %v", c.prefix, c.suffix, err)
		}
		if s.UMILength() != c.umi || s.SampleIndexLength() != c.index {
			t.Errorf("%q/%q: umi=%d index=%d", c.prefix, c.suffix, s.UMILength(), s.SampleIndexLength())
		}
		if s.PrefixLength() != c.pre || s.SuffixLength() != c.suf {
			t.Errorf("%q/%q: prefix=%d suffix=%d", c.prefix, c.suffix, s.PrefixLength(), s.SuffixLength())
		}
		if s.LinkerLength() != s.PrefixLength()+s.SuffixLength() ||
			s.LinkerLength() != s.UMILength()+s.SampleIndexLength() {
			t.Errorf("%q/%q: linker length %d inconsistent", c.prefix, c.suffix, s.LinkerLength())
		}
		if s.Prefix() != c.prefix || s.Suffix() != c.suffix {
			t.Errorf("round trip: got %q/%q", s.Prefix(), s.Suffix())
		}
	}
}

func TestParseBadChar(t *testing.T) {
	cases := []struct {
		prefix, suffix string
		bad            rune
	}{
		{"NNX", "III", 'X'},
		{"NNN", "IIx", 'x'},
		{"n", "", 'n'},
		{"N N", "", ' '},
		{"", "I\t", '\t'},
		{"NNN", "IIé", 'é'},
		{"A", "C", 'A'}, // prefix reported first
	}
	for _, c := range cases {
		s, err := Parse(c.prefix, c.suffix)
		if err == nil {
			t.Fatalf("Parse(%q,%q) succeeded: %v", c.prefix, c.suffix, s)
		}
		if s != nil {
			t.Fatalf("Parse(%q,%q) returned a spec alongside an error", c.prefix, c.suffix)
		}
		var bad *BadSpecCharError
		if !errors.As(err, &bad) {
			t.Fatalf("want *BadSpecCharError, got %T", err)
		}
		if bad.Char != c.bad {
			t.Errorf("Parse(%q,%q): bad char %q want %q", c.prefix, c.suffix, bad.Char, c.bad)
		}
		if !errors.Is(err, ErrBadSpec) {
			t.Errorf("error should match ErrBadSpec")
		}
	}
}

func TestBadSpecCharMessage(t *testing.T) {
	_, err := Parse("NQN", "")
	if err == nil || err.Error() != "bad linker spec char 'Q'" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseNtSpec(t *testing.T) {
	if nt, err := ParseNtSpec('N'); err != nil || nt != UMI {
		t.Fatalf("N -> %v, %v", nt, err)
	}
	if nt, err := ParseNtSpec('I'); err != nil || nt != SampleIndex {
		t.Fatalf("I -> %v, %v", nt, err)
	}
	if UMI.String() != "N" || SampleIndex.String() != "I" {
		t.Fatalf("String: %s %s", UMI, SampleIndex)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustParse("Z", "")
}
