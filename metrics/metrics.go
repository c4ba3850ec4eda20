// Package metrics counts forwarded logging calls with Prometheus.
//
// A [Hook] is attached to a factory with [logs.WithHooks]. The emit command
// of the CLI uses one to report what it forwarded; applications register
// theirs with the registry they already expose.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ardnew/namedlogs/logs"
)

// Namespace is the Prometheus namespace of every metric in this package.
const Namespace = "namedlogs"

const subsystem = "dispatch"

var _ logs.Hook = (*Hook)(nil)

// Hook is a [logs.Hook] counting forwarded calls by severity and by logging
// namespace.
type Hook struct {
	calls      *prometheus.CounterVec
	namespaces *prometheus.CounterVec
}

// New returns a Hook whose collectors are registered with reg. A nil reg
// leaves them unregistered.
func New(reg prometheus.Registerer) (*Hook, error) {
	h := &Hook{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "calls_total",
			Help:      "Number of logging calls forwarded to a sink, by level.",
		}, []string{"level"}),
		namespaces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "namespace_calls_total",
			Help:      "Number of logging calls forwarded to a sink, by logging namespace.",
		}, []string{"namespace"}),
	}

	if reg == nil {
		return h, nil
	}

	for _, c := range h.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Collectors returns the collectors of h.
func (h *Hook) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.calls, h.namespaces}
}

// Fire implements [logs.Hook].
func (h *Hook) Fire(namespace string, level logs.Level) error {
	h.calls.WithLabelValues(bucket(level)).Inc()
	h.namespaces.WithLabelValues(namespace).Inc()

	return nil
}

// bucket names the severity of level. Levels outside the defined range are
// folded into the nearest end.
func bucket(level logs.Level) string {
	switch {
	case level <= logs.LevelError:
		return logs.LevelError.String()
	case level >= logs.LevelTrace:
		return logs.LevelTrace.String()
	default:
		return level.String()
	}
}
