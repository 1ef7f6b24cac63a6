// core/fastq/stream.go
package fastq

import (
	"context"
	"io"
)

// StreamCtx scans FASTQ from r and calls emit for each record. It returns
// promptly when ctx is done. Return a non-nil error from emit to stop early.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := NewScanner(r)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := emit(sc.Record()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// StreamPathCtx opens path (plain, gzip or "-" for stdin) and streams it.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamCtx(ctx, rc, emit)
}
