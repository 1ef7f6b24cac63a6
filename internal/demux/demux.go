// internal/demux/demux.go
package demux

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"

	"fastxsplit/internal/writers"
)

// Demuxer routes reads to one gzip FASTQ file per sample under a directory,
// plus UnassignedName for reads that match no sample. It is not safe for
// concurrent use.
type Demuxer struct {
	m      *Matcher
	sinks  map[string]*sink
	counts map[string]int
}

type sink struct {
	path string
	fh   *os.File
	gz   *gzip.Writer
	fw   *writers.FASTQWriter
}

// New creates dir if needed and opens <dir>/<sample>.fastq.gz for every
// sample and for UnassignedName.
func New(dir string, m *Matcher, tagStyle string) (*Demuxer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("demux dir: %w", err)
	}
	d := &Demuxer{m: m, sinks: map[string]*sink{}, counts: map[string]int{}}
	names := make([]string, 0, len(m.Samples())+1)
	for _, s := range m.Samples() {
		names = append(names, s.Name)
	}
	names = append(names, UnassignedName)
	for _, name := range names {
		path := filepath.Join(dir, name+".fastq.gz")
		fh, err := os.Create(path)
		if err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("demux output: %w", err)
		}
		gz := gzip.NewWriter(fh)
		d.sinks[name] = &sink{path: path, fh: fh, gz: gz, fw: writers.NewFASTQWriter(gz, tagStyle)}
	}
	return d, nil
}

// Assign returns the sample name for a read's sample index.
func (d *Demuxer) Assign(index []byte) string {
	if s, ok := d.m.Match(index); ok {
		return s.Name
	}
	return UnassignedName
}

// Write assigns r (setting r.Sample) and appends it to that sample's file.
func (d *Demuxer) Write(r writers.Read) error {
	r.Sample = d.Assign(r.SampleIndex)
	d.counts[r.Sample]++
	s := d.sinks[r.Sample]
	if err := s.fw.Write(r); err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	return nil
}

// Counts returns reads written per sample name.
func (d *Demuxer) Counts() map[string]int {
	out := make(map[string]int, len(d.counts))
	for k, v := range d.counts {
		out[k] = v
	}
	return out
}

// Close flushes and closes every output, returning the first error.
func (d *Demuxer) Close() error {
	var err error
	keep := func(e error, path string) {
		if e != nil && err == nil {
			err = fmt.Errorf("%s: %w", path, e)
		}
	}
	for _, s := range d.sinks {
		keep(s.fw.Close(), s.path)
		keep(s.gz.Close(), s.path)
		keep(s.fh.Close(), s.path)
	}
	d.sinks = map[string]*sink{}
	return err
}
