package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruleflow/ruleflow/internal/server"
	"github.com/ruleflow/ruleflow/pkg/cache"
	"github.com/ruleflow/ruleflow/pkg/pipeline"
)

// Cache backend names for the serve command.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	backend   string
	redisAddr string
}

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		backend:   cacheBackendFile,
		redisAddr: "localhost:6379",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compile pipeline as an HTTP API",
		Long: `Serve the compile pipeline as an HTTP API.

Endpoints:
  POST /v1/compile?format=mermaid|dag|dot|svg|png   compile a JSON deck
  GET  /healthz                                     liveness probe

For multi-instance deployments, point --cache redis at a shared Redis so
rendered artifacts are computed once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := serveCache(cmd, opts)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			if err := srv.ListenAndServe(cmd.Context(), opts.addr); err != nil && !server.IsClosed(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", opts.backend, "artifact cache backend: file, redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address (with --cache redis)")

	return cmd
}

// serveCache builds the cache backend selected by flags.
func serveCache(cmd *cobra.Command, opts serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		store, err := cache.NewRedisCache(cmd.Context(), opts.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
		}
		return store, nil
	case cacheBackendFile:
		return newCache(false), nil
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", opts.backend)
	}
}
