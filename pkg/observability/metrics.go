package observability

import (
	"context"
	"errors"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records engine activity as Prometheus collectors.
type Metrics struct {
	Ticks         *prometheus.CounterVec
	TickDuration  *prometheus.HistogramVec
	Builds        *prometheus.CounterVec
	BuildWarnings *prometheus.CounterVec
	Nodes         *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by a previous call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_ticks_total",
			Help: "Total number of tree ticks by resulting status",
		}, []string{"tree", "status"}),
		TickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arbor_tick_duration_seconds",
			Help:    "Duration of tree ticks",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"tree"}),
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_builds_total",
			Help: "Total number of tree builds",
		}, []string{"tree"}),
		BuildWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_build_warnings_total",
			Help: "Total number of warnings raised while building trees",
		}, []string{"tree"}),
		Nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arbor_tree_nodes",
			Help: "Number of nodes in the latest build of a tree",
		}, []string{"tree"}),
	}

	if reg == nil {
		return m, nil
	}
	var err error
	m.Ticks, err = register(reg, m.Ticks)
	if err != nil {
		return nil, err
	}
	m.TickDuration, err = register(reg, m.TickDuration)
	if err != nil {
		return nil, err
	}
	m.Builds, err = register(reg, m.Builds)
	if err != nil {
		return nil, err
	}
	m.BuildWarnings, err = register(reg, m.BuildWarnings)
	if err != nil {
		return nil, err
	}
	m.Nodes, err = register(reg, m.Nodes)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuild: func(_ context.Context, e *domain.BuildEvent) {
			m.Builds.WithLabelValues(e.Tree).Inc()
			m.BuildWarnings.WithLabelValues(e.Tree).Add(float64(len(e.Warnings)))
			m.Nodes.WithLabelValues(e.Tree).Set(float64(e.Nodes))
		},
		OnTickEnd: func(_ context.Context, e *domain.TickEvent) {
			m.Ticks.WithLabelValues(e.Tree, e.Status.String()).Inc()
			m.TickDuration.WithLabelValues(e.Tree).Observe(e.Duration.Seconds())
		},
	}
}
