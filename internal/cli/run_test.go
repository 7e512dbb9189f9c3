package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/pkg/adapters/devapi"
	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/adapters/terminal"
)

func newOptions(t *testing.T, in string) (RunOptions, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(devapi.NewHandler(memory.NewStore()))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	return RunOptions{
		In:      strings.NewReader(in),
		Out:     &out,
		Style:   terminal.StylePlain,
		Console: []zconv.Option{zconv.WithAPIURL(srv.URL)},
	}, &out
}

func TestRun_Session(t *testing.T) {
	opts, out := newOptions(t, "dz_a_aazzaaa\n:history\n:clear\n:quit\nnever sent\n")

	require.NoError(t, Run(context.Background(), opts))

	text := out.String()
	assert.Contains(t, text, "History:\nNo history found.\n")
	assert.Contains(t, text, "Output: [28, 53, 1]\n")
	assert.Contains(t, text, "Input: dz_a_aazzaaa \nOutput: [28, 53, 1]\n")
	assert.Contains(t, text, ">>> Cleared.\n")
	assert.NotContains(t, text, "never sent")
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	opts, out := newOptions(t, "abc")

	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, out.String(), "Output: [2]\n")
}

func TestRun_ValidationErrorIsRendered(t *testing.T) {
	opts, out := newOptions(t, "   \n")

	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, out.String(), "Error: ")
}

func TestRun_Help(t *testing.T) {
	opts, out := newOptions(t, ":help\n")

	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, out.String(), ":history")
	assert.Contains(t, out.String(), ":quit")
}

func TestRun_Banner(t *testing.T) {
	opts, out := newOptions(t, "")
	opts.Banner = true

	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, out.String(), "v"+strings.TrimSpace(zconv.Version))
}

func TestRun_CancelledContext(t *testing.T) {
	opts, out := newOptions(t, "")
	reader, writer := io.Pipe()
	defer writer.Close()
	opts.In = reader

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, opts) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, out.String(), ">>> Interrupted.")
}

func TestConvertAndHistory(t *testing.T) {
	opts, out := newOptions(t, "")

	require.NoError(t, Convert(context.Background(), opts, "abc"))
	assert.Equal(t, "Output: [2]\nHistory:\nInput: abc \nOutput: [2]\n", out.String())

	out.Reset()
	require.NoError(t, History(context.Background(), opts))
	assert.Equal(t, "History:\nInput: abc \nOutput: [2]\n", out.String())
}

func TestConvert_BadURL(t *testing.T) {
	opts, _ := newOptions(t, "")
	opts.Console = []zconv.Option{zconv.WithAPIURL("127.0.0.1:8888")}

	assert.Error(t, Convert(context.Background(), opts, "abc"))
}
