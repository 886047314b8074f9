package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const metricsNamespace = "nsupdate_interactive"

var (
	// registry holds the collectors pushed by PushMetrics.
	registry = prometheus.NewRegistry() //nolint:gochecknoglobals

	counter     *prometheus.CounterVec //nolint:gochecknoglobals
	counterOnce sync.Once              //nolint:gochecknoglobals
)

// CounterHook counts log statements per level.
type CounterHook struct{}

// Run implements zerolog.Hook.
func (h CounterHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel && counter != nil {
		counter.WithLabelValues(level.String()).Inc()
	}
}

// NewCounterHook registers the log statement counter for service once and
// returns the hook feeding it.
func NewCounterHook(service string) CounterHook {
	counterOnce.Do(func() {
		counter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   metricsNamespace,
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)

		registry.MustRegister(counter)
	})

	return CounterHook{}
}
