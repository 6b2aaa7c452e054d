package resolver

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus counters for resolution decisions. A nil
// *Metrics records nothing.
type Metrics struct {
	lookups   *prometheus.CounterVec // By result (hit/store/miss)
	decisions *prometheus.CounterVec // By kind (external/local)
}

// NewMetrics creates resolver metrics and registers them with reg.
// A nil registerer disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semlink",
			Subsystem: "resolver",
			Name:      "cache_lookups_total",
			Help:      "Resolution requests by cache result",
		}, []string{"result"}),

		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semlink",
			Subsystem: "resolver",
			Name:      "decisions_total",
			Help:      "New resolution decisions by URI kind",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.lookups, m.decisions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) decision(kind string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(kind).Inc()
}
