package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Source{Environ: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8888", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Style)
	assert.True(t, cfg.StaleGuard)
	assert.Equal(t, "127.0.0.1:8080", cfg.Web.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Web.SessionIdle)
	assert.Equal(t, StoreMemory, cfg.DevAPI.Store)
	assert.Equal(t, 1000, cfg.DevAPI.MaxInput)
	assert.Empty(t, cfg.DevAPI.Redact)
}

func TestLoad_Precedence(t *testing.T) {
	file := writeFile(t, "zconv.yaml", `
api_url: http://file:1
log_level: debug
devapi:
  store: redis
  redis_prefix: file:
  redact: ["secret", "token"]
`)
	envFile := writeFile(t, ".env", "ZCONV_API_URL=http://dotenv:2\nZCONV_DEVAPI_REDIS_PREFIX=dotenv:\n")

	cfg, err := Load(Source{
		File:    file,
		EnvFile: envFile,
		Environ: []string{
			"ZCONV_DEVAPI_REDIS_PREFIX=env:",
			"ZCONV_STALE_GUARD=false",
			"ZCONV_WEB_SESSION_IDLE=5m",
			"UNRELATED=1",
		},
		Overrides: map[string]any{"log_level": "warn"},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://dotenv:2", cfg.APIURL, ".env beats the file")
	assert.Equal(t, "env:", cfg.DevAPI.RedisPrefix, "environment beats .env")
	assert.Equal(t, "warn", cfg.LogLevel, "flags beat everything")
	assert.Equal(t, StoreRedis, cfg.DevAPI.Store)
	assert.Equal(t, []string{"secret", "token"}, cfg.DevAPI.Redact)
	assert.False(t, cfg.StaleGuard)
	assert.Equal(t, 5*time.Minute, cfg.Web.SessionIdle)
	assert.Equal(t, "127.0.0.1:8888", cfg.DevAPI.Addr, "untouched nested keys keep defaults")
}

func TestLoad_ListFromEnv(t *testing.T) {
	cfg, err := Load(Source{Environ: []string{"ZCONV_DEVAPI_ENCRYPTION_FALLBACK_KEYS=a,b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.DevAPI.EncryptionFallbackKeys)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Source{EnvFile: filepath.Join(t.TempDir(), ".env"), Environ: []string{}})
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(Source{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load(Source{File: writeFile(t, "bad.yaml", "api_url: [")})
	assert.Error(t, err)

	_, err = Load(Source{File: writeFile(t, "unknown.yaml", "colour: red\n"), Environ: []string{}})
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(Source{Environ: []string{"ZCONV_WEB_SESSION_IDLE=0s"}})
	assert.Error(t, err)

	_, err = Load(Source{Environ: []string{"ZCONV_DEVAPI_STORE=sqlite", "ZCONV_LOG_LEVEL=loud"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Contains(t, err.Error(), "loud")
}

func TestKeysAndEnvName(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "api_url")
	assert.Contains(t, keys, "devapi.redis_addr")
	assert.Contains(t, keys, "web.addr")
	assert.Equal(t, "ZCONV_DEVAPI_REDIS_ADDR", EnvName("devapi.redis_addr"))
}
