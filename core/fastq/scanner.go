// core/fastq/scanner.go
package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrShort is returned when the input ends in the middle of a record.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned for malformed records.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// Record is one FASTQ read. Sequence and Quality always have equal length.
type Record struct {
	ID       string // header up to the first space or tab, without '@'
	Desc     string // remainder of the header line, may be empty
	Sequence []byte
	Quality  []byte // Phred+33 encoded
}

func (r *Record) Seq() []byte  { return r.Sequence }
func (r *Record) Qual() []byte { return r.Quality }

// Header reassembles the header line without the leading '@'.
func (r *Record) Header() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}

// Scanner reads FASTQ records one at a time. It checks that header lines
// start with '@', separator lines with '+', and that sequence and quality
// lengths match. Scanners are not safe for concurrent use.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	rec  Record
	err  error
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // long-read platforms emit very long lines
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Scanner{sc: sc}
}

// Scan advances to the next record. It returns false at EOF or on error;
// Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	hdr, ok := s.next()
	for ok && len(hdr) == 0 {
		hdr, ok = s.next()
	}
	if !ok {
		return false
	}
	if hdr[0] != '@' {
		return s.fail(ErrInvalid, "header must start with '@'")
	}
	id, desc := splitHeader(hdr[1:])

	seq, ok := s.next()
	if !ok {
		return s.fail(ErrShort, "missing sequence line")
	}
	seq = append([]byte(nil), bytes.TrimSpace(seq)...)

	plus, ok := s.next()
	if !ok {
		return s.fail(ErrShort, "missing '+' line")
	}
	if len(plus) == 0 || plus[0] != '+' {
		return s.fail(ErrInvalid, "separator must start with '+'")
	}

	qual, ok := s.next()
	if !ok {
		return s.fail(ErrShort, "missing quality line")
	}
	qual = append([]byte(nil), bytes.TrimSpace(qual)...)
	if len(qual) != len(seq) {
		return s.fail(ErrInvalid, fmt.Sprintf("record %q: sequence length %d != quality length %d", id, len(seq), len(qual)))
	}

	s.rec = Record{ID: id, Desc: desc, Sequence: seq, Quality: qual}
	return true
}

// Record returns the most recently scanned record. The record is owned by
// the caller and is not reused by later calls to Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first non-EOF error.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) next() ([]byte, bool) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			s.err = fmt.Errorf("fastq scan: %w", err)
		}
		return nil, false
	}
	s.line++
	return bytes.TrimRight(s.sc.Bytes(), "\r"), true
}

func (s *Scanner) fail(kind error, msg string) bool {
	if s.err == nil {
		s.err = fmt.Errorf("%w: line %d: %s", kind, s.line, msg)
	}
	return false
}

func splitHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
