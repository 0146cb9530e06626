/*
Package observability provides lifecycle hooks for monitoring the Arbor engine.

Hooks are plain domain.LifecycleHooks values: Metrics exports build and tick
counters to Prometheus, Logging writes structured events through slog, and
Chain fans one event out to several hook sets.

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Chain(metrics.Hooks(), observability.Logging(logger))
	eng, _ := arbor.New("./trees", arbor.WithLifecycleHooks(hooks))
*/
package observability
