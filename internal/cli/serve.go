package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/arbor"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	adapter "github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/agent"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// ServeOptions configures the inspector server.
type ServeOptions struct {
	Dir    string
	Port   string
	Debug  bool
	Config Config
}

// Serve runs the HTTP inspector until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions, out io.Writer) error {
	logger, err := createLogger(opts.Config, opts.Debug)
	if err != nil {
		return err
	}

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	hooks := observability.Chain(metrics.Hooks(), observability.Logging(logger))

	engineOpts := []arbor.Option{arbor.WithLogger(logger), arbor.WithLifecycleHooks(hooks)}
	managerOpts := []agent.Option{agent.WithLogger(logger)}

	if opts.Config.Redis.Addr != "" {
		client, err := newRedisClient(ctx, opts.Config.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		global := redisScope(ctx, client, logger)
		engineOpts = append(engineOpts, arbor.WithGlobal(global))
		managerOpts = append(managerOpts,
			agent.WithGlobal(global),
			agent.WithStore(adapter.NewFromClient(client)),
			agent.WithLocker(adapter.NewLocker(client, adapter.DefaultPrefix), 30*time.Second),
		)
		logger.Info("Using Redis", "addr", opts.Config.Redis.Addr)
	}

	engine, err := arbor.New(opts.Dir, engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing arbor: %w", err)
	}
	manager := agent.NewManager(engine, managerOpts...)

	handler := httpAdapter.NewHandler(engine, manager,
		httpAdapter.WithRegistry(engine.Registry()),
		httpAdapter.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Starting Arbor inspector on %s", srv.Addr)
		printSystemMessage(out, "Serving trees from: %s", opts.Dir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Arbor inspector stopped gracefully")
		return nil
	}
}
