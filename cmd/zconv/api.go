package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aretw0/zconv/internal/cli"
	"github.com/aretw0/zconv/internal/config"
	"github.com/aretw0/zconv/pkg/adapters/devapi"
	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/adapters/mongo"
	"github.com/aretw0/zconv/pkg/adapters/redis"
	"github.com/aretw0/zconv/pkg/persistence/middleware"
	"github.com/aretw0/zconv/pkg/ports"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run a development conversion API",
	Long: `Runs a local implementation of /api/convert and /api/history so the page
can be used without the production backend.

History can be kept in memory, redis or mongo, optionally redacted and sealed
with AES-GCM before it reaches the store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		store, closer, err := openStore(sigCtx, cfg.DevAPI)
		if err != nil {
			return err
		}
		defer closer.Close()

		store, err = wrapStore(store, cfg.DevAPI)
		if err != nil {
			return err
		}

		handler := devapi.NewHandler(store,
			devapi.WithLogger(logger),
			devapi.WithMaxInputLength(cfg.DevAPI.MaxInput),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Conversion API on http://%s (store: %s)\n", cfg.DevAPI.Addr, cfg.DevAPI.Store)
		return serveHTTP(sigCtx, &http.Server{Addr: cfg.DevAPI.Addr, Handler: handler})
	},
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore connects the configured history backend.
func openStore(ctx context.Context, c config.DevAPIConfig) (ports.HistoryStore, io.Closer, error) {
	switch c.Store {
	case config.StoreRedis:
		s := redis.New(c.RedisAddr, "", 0, redis.WithPrefix(c.RedisPrefix), redis.WithLimit(c.RedisLimit))
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", c.RedisAddr, err)
		}
		return s, s, nil
	case config.StoreMongo:
		s, err := mongo.Connect(ctx, c.MongoURI, mongo.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return memory.NewStore(), nopCloser{}, nil
	}
}

// wrapStore applies redaction (outermost, sees plaintext) and then encryption.
func wrapStore(store ports.HistoryStore, c config.DevAPIConfig) (ports.HistoryStore, error) {
	var mws []middleware.Middleware
	if len(c.Redact) > 0 {
		mw, err := middleware.NewRedactionMiddleware(c.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if c.EncryptionKey != "" {
		active, err := middleware.ParseKey(c.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("devapi.encryption_key: %w", err)
		}
		var fallback [][]byte
		for i, k := range c.EncryptionFallbackKeys {
			key, err := middleware.ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("devapi.encryption_fallback_keys[%d]: %w", i, err)
			}
			fallback = append(fallback, key)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(store, mws...), nil
}

func init() {
	rootCmd.AddCommand(apiCmd)
	flags := apiCmd.Flags()
	bindFlag(flags, "addr", "devapi.addr", "", "address to listen on")
	bindFlag(flags, "store", "devapi.store", "", "history store: memory, redis or mongo")
	bindFlag(flags, "redis-addr", "devapi.redis_addr", "", "redis address")
	bindFlag(flags, "mongo-uri", "devapi.mongo_uri", "", "mongo connection URI")
	flags.StringSlice("redact", nil, "regular expressions masked in stored inputs")
	_ = flags.SetAnnotation("redact", configKeyAnnotation, []string{"devapi.redact"})
}
