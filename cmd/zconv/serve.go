package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/cli"
	httpAdapter "github.com/aretw0/zconv/pkg/adapters/http"
	"github.com/aretw0/zconv/pkg/adapters/redis"
	"github.com/aretw0/zconv/pkg/observability"
	"github.com/aretw0/zconv/pkg/session"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion page over HTTP",
	Long: `Serves the conversion page to browsers. Each visitor gets a server-side session;
forms post back and the page is re-rendered once the API has answered.
Prometheus metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := observability.NewMetrics()

		var sessionOpts []session.Option
		sessionOpts = append(sessionOpts, session.WithLogger(logger))
		if cfg.Web.RedisLockAddr != "" {
			client := goredis.NewClient(&goredis.Options{Addr: cfg.Web.RedisLockAddr})
			defer client.Close()
			if err := client.Ping(cmd.Context()).Err(); err != nil {
				return fmt.Errorf("failed to reach redis lock backend: %w", err)
			}
			sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(client, "zconv:")))
		}

		srv := httpAdapter.NewServer(
			httpAdapter.WithConsoleOptions(append(consoleOptions(), zconv.WithObserver(metrics))...),
			httpAdapter.WithSessionOptions(sessionOpts...),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(logger),
		)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving zconv on http://%s (API %s)\n", cfg.Web.Addr, cfg.APIURL)
		err := serveHTTP(sigCtx, &http.Server{Addr: cfg.Web.Addr, Handler: srv.Routes()}, func(ctx context.Context) error {
			srv.RunJanitor(ctx, cfg.Web.SessionIdle/2, cfg.Web.SessionIdle)
			return nil
		})
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Server stopped", "signal", sig.String())
		}
		return err
	},
}

// serveHTTP runs srv and the background tasks until ctx is done, then shuts down gracefully.
func serveHTTP(ctx context.Context, srv *http.Server, background ...func(context.Context) error) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	for _, task := range background {
		group.Go(func() error { return task(ctx) })
	}
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		return nil
	})

	return group.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	bindFlag(serveCmd.Flags(), "addr", "web.addr", "", "address to listen on")
	bindFlag(serveCmd.Flags(), "redis-lock", "web.redis_lock_addr", "", "redis address for cross-replica session locks")
	bindFlag(serveCmd.Flags(), "session-idle", "web.session_idle", "", "drop sessions idle for longer than this")
}
