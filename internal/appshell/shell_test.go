package appshell

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/grailbio/testutil/expect"

	"fastxsplit/internal/cmdutil"
)

func TestRunDefaultsToHelp(t *testing.T) {
	var got []string
	code := run(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return cmdutil.ExitOK
	}, nil, io.Discard, io.Discard)
	expect.EQ(t, code, cmdutil.ExitOK)
	expect.EQ(t, got, []string{"-h"})
}

func TestRunPassesCodeThrough(t *testing.T) {
	var stdout bytes.Buffer
	code := run(func(ctx context.Context, argv []string, out, _ io.Writer) int {
		expect.NoError(t, ctx.Err())
		_, _ = io.WriteString(out, argv[0])
		return cmdutil.ExitConfig
	}, []string{"--bogus"}, &stdout, io.Discard)
	expect.EQ(t, code, cmdutil.ExitConfig)
	expect.EQ(t, stdout.String(), "--bogus")
}
