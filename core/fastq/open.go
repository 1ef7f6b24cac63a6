// core/fastq/open.go
package fastq

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes every underlying closer on Close.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over path. "-" is stdin; gzip input is detected by
// magic number (1F 8B) or a .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return maybeGzip(os.Stdin, io.NopCloser(os.Stdin), false)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return maybeGzip(fh, fh, strings.HasSuffix(path, ".gz"))
}

func maybeGzip(r io.Reader, c io.Closer, forceGzip bool) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, 64<<10)
	sig, _ := br.Peek(2)
	if forceGzip || (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, c}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{c}}, nil
}
