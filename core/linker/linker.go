// core/linker/linker.go
package linker

import (
	"errors"
	"fmt"
	"strings"
)

// NtSpec is the role of one linker position.
type NtSpec uint8

const (
	// UMI marks a unique molecular identifier base ('N').
	UMI NtSpec = iota
	// SampleIndex marks a sample barcode base ('I').
	SampleIndex
)

// ErrBadSpec is matched by every linker specification parse failure.
var ErrBadSpec = errors.New("bad linker spec")

// BadSpecCharError names the character that could not be parsed.
type BadSpecCharError struct {
	Char rune
}

func (e *BadSpecCharError) Error() string {
	return fmt.Sprintf("bad linker spec char '%c'", e.Char)
}

func (e *BadSpecCharError) Is(target error) bool { return target == ErrBadSpec }

// ParseNtSpec maps a specification character to its role:
// 'N' is a UMI base, 'I' is a sample index base.
func ParseNtSpec(ch rune) (NtSpec, error) {
	switch ch {
	case 'N':
		return UMI, nil
	case 'I':
		return SampleIndex, nil
	default:
		return 0, &BadSpecCharError{Char: ch}
	}
}

func (n NtSpec) String() string {
	switch n {
	case UMI:
		return "N"
	case SampleIndex:
		return "I"
	default:
		return fmt.Sprintf("NtSpec(%d)", uint8(n))
	}
}

// Spec describes how bases are removed from the beginning and the end of a
// read and turned into the UMI and the sample index. A Spec is immutable
// once parsed and may be shared between goroutines.
type Spec struct {
	prefix []NtSpec
	suffix []NtSpec

	sampleIndexLength int
	umiLength         int
}

// Parse compiles the prefix and suffix specification strings. Both strings
// are checked in full before a Spec is returned; the first bad character
// (prefix first) is reported as a *BadSpecCharError.
func Parse(prefix, suffix string) (*Spec, error) {
	pre, err := parseSegment(prefix)
	if err != nil {
		return nil, err
	}
	suf, err := parseSegment(suffix)
	if err != nil {
		return nil, err
	}

	s := &Spec{prefix: pre, suffix: suf}
	for _, seg := range [][]NtSpec{pre, suf} {
		for _, nt := range seg {
			switch nt {
			case UMI:
				s.umiLength++
			case SampleIndex:
				s.sampleIndexLength++
			}
		}
	}
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(prefix, suffix string) *Spec {
	s, err := Parse(prefix, suffix)
	if err != nil {
		panic(err)
	}
	return s
}

func parseSegment(str string) ([]NtSpec, error) {
	seg := make([]NtSpec, 0, len(str))
	for _, ch := range str {
		nt, err := ParseNtSpec(ch)
		if err != nil {
			return nil, err
		}
		seg = append(seg, nt)
	}
	return seg, nil
}

// PrefixLength is the number of bases removed from the start of the read.
func (s *Spec) PrefixLength() int { return len(s.prefix) }

// SuffixLength is the number of bases removed from the end of the read.
func (s *Spec) SuffixLength() int { return len(s.suffix) }

// LinkerLength is the total number of bases removed from the read.
func (s *Spec) LinkerLength() int { return len(s.prefix) + len(s.suffix) }

// SampleIndexLength is the length of the sample index built from the linker.
func (s *Spec) SampleIndexLength() int { return s.sampleIndexLength }

// UMILength is the length of the UMI built from the linker.
func (s *Spec) UMILength() int { return s.umiLength }

// Prefix returns the prefix specification string.
func (s *Spec) Prefix() string { return segmentString(s.prefix) }

// Suffix returns the suffix specification string.
func (s *Spec) Suffix() string { return segmentString(s.suffix) }

func (s *Spec) String() string {
	return fmt.Sprintf("prefix=%q suffix=%q", s.Prefix(), s.Suffix())
}

func segmentString(seg []NtSpec) string {
	var b strings.Builder
	b.Grow(len(seg))
	for _, nt := range seg {
		b.WriteString(nt.String())
	}
	return b.String()
}
