// Package config merges defaults, a YAML file, a .env file, ZCONV_* variables
// and command-line overrides into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/adapters/terminal"
	"github.com/aretw0/zconv/pkg/domain"
)

// EnvPrefix namespaces environment variables: devapi.redis_addr is read from
// ZCONV_DEVAPI_REDIS_ADDR.
const EnvPrefix = "ZCONV_"

// History store kinds for the development API.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config is the merged configuration.
type Config struct {
	APIURL     string       `mapstructure:"api_url"`
	LogLevel   string       `mapstructure:"log_level"`
	Style      string       `mapstructure:"style"`
	StaleGuard bool         `mapstructure:"stale_guard"`
	Web        WebConfig    `mapstructure:"web"`
	DevAPI     DevAPIConfig `mapstructure:"devapi"`
}

// WebConfig configures `zconv serve`.
type WebConfig struct {
	Addr          string        `mapstructure:"addr"`
	RedisLockAddr string        `mapstructure:"redis_lock_addr"`
	SessionIdle   time.Duration `mapstructure:"session_idle"`
}

// DevAPIConfig configures `zconv api`.
type DevAPIConfig struct {
	Addr                   string   `mapstructure:"addr"`
	Store                  string   `mapstructure:"store"`
	RedisAddr              string   `mapstructure:"redis_addr"`
	RedisPrefix            string   `mapstructure:"redis_prefix"`
	RedisLimit             int64    `mapstructure:"redis_limit"`
	MongoURI               string   `mapstructure:"mongo_uri"`
	EncryptionKey          string   `mapstructure:"encryption_key"`
	EncryptionFallbackKeys []string `mapstructure:"encryption_fallback_keys"`
	Redact                 []string `mapstructure:"redact"`
	MaxInput               int      `mapstructure:"max_input"`
}

// Defaults returns the built-in settings. Every configurable key has an entry.
func Defaults() map[string]any {
	return map[string]any{
		"api_url":     domain.DefaultAPIURL,
		"log_level":   "info",
		"style":       string(terminal.StyleAuto),
		"stale_guard": true,
		"web": map[string]any{
			"addr":            "127.0.0.1:8080",
			"redis_lock_addr": "",
			"session_idle":    "30m",
		},
		"devapi": map[string]any{
			"addr":                     "127.0.0.1:8888",
			"store":                    StoreMemory,
			"redis_addr":               "localhost:6379",
			"redis_prefix":             "zconv:",
			"redis_limit":              0,
			"mongo_uri":                "mongodb://localhost:27017",
			"encryption_key":           "",
			"encryption_fallback_keys": []string{},
			"redact":                   []string{},
			"max_input":                1000,
		},
	}
}

// Source lists where settings come from, lowest precedence first
// (after the defaults).
type Source struct {
	// File is an optional YAML file. A missing file is an error.
	File string
	// EnvFile is an optional .env file. A missing file is ignored.
	EnvFile string
	// Environ replaces os.Environ(), for tests.
	Environ []string
	// Overrides are dotted keys set from flags.
	Overrides map[string]any
}

// Load merges every source and validates the result.
func Load(src Source) (*Config, error) {
	settings := Defaults()

	if src.File != "" {
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", src.File, err)
		}
		merge(settings, fromFile)
	}

	env := map[string]string{}
	if src.EnvFile != "" {
		dotenv, err := godotenv.Read(src.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		for k, v := range dotenv {
			env[k] = v
		}
	}
	environ := src.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	for _, key := range Keys() {
		if v, ok := env[EnvName(key)]; ok {
			set(settings, key, v)
		}
	}

	for key, v := range src.Overrides {
		set(settings, key, v)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := terminal.ParseStyle(c.Style); err != nil {
		errs = append(errs, err)
	}
	switch c.DevAPI.Store {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown devapi.store %q (want memory, redis or mongo)", c.DevAPI.Store))
	}
	if c.Web.SessionIdle <= 0 {
		errs = append(errs, fmt.Errorf("web.session_idle must be positive"))
	}
	if c.DevAPI.MaxInput <= 0 {
		errs = append(errs, fmt.Errorf("devapi.max_input must be positive"))
	}
	return errors.Join(errs...)
}

// Keys lists every dotted key, sorted.
func Keys() []string {
	var keys []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if sub, ok := v.(map[string]any); ok {
				walk(prefix+k+".", sub)
				continue
			}
			keys = append(keys, prefix+k)
		}
	}
	walk("", Defaults())
	sort.Strings(keys)
	return keys
}

// EnvName maps a dotted key to its environment variable.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func set(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		sub, ok := m[p].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[p] = sub
		}
		m = sub
	}
	m[parts[len(parts)-1]] = v
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				merge(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}
