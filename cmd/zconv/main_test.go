package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/config"
	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/adapters/devapi"
	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/domain"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "zconv version "+strings.TrimSpace(zconv.Version)+"\n", out)
}

func TestConvertCommand(t *testing.T) {
	srv := httptest.NewServer(devapi.NewHandler(memory.NewStore()))
	defer srv.Close()

	out := execute(t, "convert", "--api-url", srv.URL, "--style", "plain", "dz_a_aazzaaa")
	assert.Equal(t, "Output: [28, 53, 1]\nHistory:\nInput: dz_a_aazzaaa \nOutput: [28, 53, 1]\n", out)
	assert.Equal(t, srv.URL, cfg.APIURL)

	out = execute(t, "history", "--api-url", srv.URL, "--style", "plain")
	assert.Equal(t, "History:\nInput: dz_a_aazzaaa \nOutput: [28, 53, 1]\n", out)
}

func TestWrapStore(t *testing.T) {
	logger = logging.NewNop()
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	inner := memory.NewStore()
	store, err := wrapStore(inner, config.DevAPIConfig{
		Redact:        []string{`secret\d+`},
		EncryptionKey: key,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, domain.Record{Input: "my secret42", Output: []int{1}}))

	raw, err := inner.List(ctx)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Empty(t, raw[0].Input, "the inner store only sees ciphertext")
	assert.NotEmpty(t, raw[0].Sealed)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "my ***", list[0].Input)
	assert.Equal(t, []int{1}, list[0].Output)
}

func TestWrapStore_BadKey(t *testing.T) {
	_, err := wrapStore(memory.NewStore(), config.DevAPIConfig{EncryptionKey: "short"})
	assert.Error(t, err)

	_, err = wrapStore(memory.NewStore(), config.DevAPIConfig{Redact: []string{"("}})
	assert.Error(t, err)
}

func TestOpenStore_Memory(t *testing.T) {
	store, closer, err := openStore(context.Background(), config.DevAPIConfig{Store: config.StoreMemory})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closer.Close())
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph", "--active", domain.FormID)
	assert.Contains(t, out, "convertForm -- \"submit\" --> resultArea")
	assert.Contains(t, out, "class convertForm current;")
}

func TestRunCommand_EOF(t *testing.T) {
	srv := httptest.NewServer(devapi.NewHandler(memory.NewStore()))
	defer srv.Close()

	out := execute(t, "run", "--no-banner", "--api-url", srv.URL, "--style", "plain")
	assert.Contains(t, out, "History:\nNo history found.\n")
}
