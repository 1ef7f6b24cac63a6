package fastq

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, data string, gz bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var w io.Writer = fh
	var gw *gzip.Writer
	if gz {
		gw = gzip.NewWriter(fh)
		w = gw
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			t.Fatalf("close gzip: %v", err)
		}
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func collect(t *testing.T, path string) []string {
	t.Helper()
	var ids []string
	err := StreamPathCtx(context.Background(), path, func(r Record) error {
		ids = append(ids, r.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("stream %s: %v", path, err)
	}
	return ids
}

func TestStreamPlainAndGzip(t *testing.T) {
	plain := writeFile(t, "reads.fq", twoReads, false)
	gz := writeFile(t, "reads.fq.gz", twoReads, true)
	// gzip content without the suffix is detected by magic number
	sniffed := writeFile(t, "reads.bin", twoReads, true)

	for _, p := range []string{plain, gz, sniffed} {
		if ids := collect(t, p); strings.Join(ids, ",") != "r1,r2" {
			t.Fatalf("%s: ids=%v", filepath.Base(p), ids)
		}
	}
}

func TestStreamStdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, twoReads)
		_ = w.Close()
	}()

	if ids := collect(t, "-"); len(ids) != 2 {
		t.Fatalf("expected 2 records from stdin, got %v", ids)
	}
}

func TestStreamMissingFile(t *testing.T) {
	err := StreamPathCtx(context.Background(), filepath.Join(t.TempDir(), "nope.fq"), func(Record) error { return nil })
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func TestStreamCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err := StreamCtx(ctx, strings.NewReader(twoReads), func(Record) error {
		n++
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) || n != 1 {
		t.Fatalf("want cancel after first record, got n=%d err=%v", n, err)
	}
}

func TestStreamEmitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	err := StreamCtx(context.Background(), strings.NewReader(twoReads), func(Record) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("want emit error, got %v", err)
	}
}
