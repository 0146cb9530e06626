package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Path      string
	Ticks     int
	Delta     float64
	Interval  time.Duration
	UntilDone bool
	JSON      bool
	Quiet     bool
	Debug     bool
	Config    Config
}

// TickRecord is one line of --json output.
type TickRecord struct {
	Tick   uint64         `json:"tick"`
	Status domain.Status  `json:"status"`
	Debug  map[string]any `json:"debug,omitempty"`
}

// Run loads a tree and ticks it, printing one line per tick to out.
// It returns the status of the last tick.
func Run(ctx context.Context, opts RunOptions, out io.Writer) (domain.Status, error) {
	logger, err := createLogger(opts.Config, opts.Debug)
	if err != nil {
		return domain.Error, err
	}

	dir, name, err := resolveTree(opts.Path)
	if err != nil {
		return domain.Error, err
	}

	engineOpts := []arbor.Option{arbor.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, arbor.WithLifecycleHooks(observability.Logging(logger)))
	}
	if opts.Config.Redis.Addr != "" {
		client, err := newRedisClient(ctx, opts.Config.Redis)
		if err != nil {
			return domain.Error, err
		}
		defer client.Close()
		engineOpts = append(engineOpts, arbor.WithGlobal(redisScope(ctx, client, logger)))
	}

	engine, err := arbor.New(dir, engineOpts...)
	if err != nil {
		return domain.Error, fmt.Errorf("error initializing arbor: %w", err)
	}
	tree, err := engine.Load(ctx, name)
	if err != nil {
		return domain.Error, err
	}

	styler := tui.NewStyler(out)
	if !opts.JSON && !opts.Quiet {
		printSystemMessage(out, "Running '%s' (%d nodes).", name, tree.Spec().Count())
	}

	bb := engine.NewBlackboard()
	status := tree.LastStatus()
	for i := 0; opts.Ticks <= 0 || i < opts.Ticks; i++ {
		if i > 0 && opts.Interval > 0 {
			select {
			case <-ctx.Done():
				return status, nil
			case <-time.After(opts.Interval):
			}
		} else if ctx.Err() != nil {
			return status, nil
		}

		bb.SetLocal(blackboard.DeltaKey, opts.Delta)
		status = tree.Tick(ctx, nil, bb)

		if err := report(out, styler, opts, tree.Ticks(), status, bb); err != nil {
			return status, err
		}
		if opts.UntilDone && status != domain.Running {
			break
		}
	}
	return status, nil
}

func report(out io.Writer, styler *tui.Styler, opts RunOptions, tick uint64, status domain.Status, bb *blackboard.Blackboard) error {
	if opts.JSON {
		return json.NewEncoder(out).Encode(TickRecord{Tick: tick, Status: status, Debug: bb.DebugEntries()})
	}
	if opts.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(out, "%s %s\n", styler.Faint(fmt.Sprintf("tick %4d", tick)), styler.Status(status))
	return err
}
