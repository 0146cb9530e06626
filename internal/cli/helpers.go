package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/arbor/internal/logging"
	adapter "github.com/aretw0/arbor/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, everything goes to Stderr (to separate from Stdout tick output).
func createLogger(cfg Config, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug, cfg.LogJSON), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.LogJSON), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// newRedisClient connects to addr, a host:port or a redis:// URL.
func newRedisClient(ctx context.Context, cfg RedisConfig) (*backend.Client, error) {
	opts := &backend.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		parsed, err := backend.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}
	client := backend.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// redisScope builds the shared global scope on client.
func redisScope(ctx context.Context, client *backend.Client, logger *slog.Logger) *adapter.Scope {
	return adapter.NewScope(client, adapter.WithScopeContext(ctx), adapter.WithScopeLogger(logger))
}

// resolveTree splits a run/validate/graph argument into a tree directory and
// a tree name. A file names its tree; a directory uses its entry point.
func resolveTree(path string) (dir, name string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	if info.IsDir() {
		return path, determineEntryPoint(path), nil
	}
	base := filepath.Base(path)
	return filepath.Dir(path), strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// determineEntryPoint picks the tree to run from a directory: "main", then
// "root", then a tree named after the directory, then "main" as a default.
func determineEntryPoint(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	for _, candidate := range []string{"main", "root", filepath.Base(abs)} {
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			if _, err := os.Stat(filepath.Join(dir, candidate+ext)); err == nil {
				return candidate
			}
		}
	}
	return "main"
}
