package lookup

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds Prometheus counters for lookup traffic. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests   *prometheus.CounterVec // By source and outcome (ok/error)
	retries    *prometheus.CounterVec // By source
	candidates *prometheus.CounterVec // By source
}

// NewMetrics creates lookup metrics and registers them with reg.
// A nil registerer disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semlink",
			Subsystem: "lookup",
			Name:      "requests_total",
			Help:      "Lookup requests by source and outcome, counted after retries",
		}, []string{"source", "outcome"}),

		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semlink",
			Subsystem: "lookup",
			Name:      "retries_total",
			Help:      "Lookup request attempts beyond the first",
		}, []string{"source"}),

		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semlink",
			Subsystem: "lookup",
			Name:      "candidates_total",
			Help:      "Candidate entities returned by lookup sources",
		}, []string{"source"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.retries, m.candidates} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) request(source Source, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(source), outcome).Inc()
}

func (m *Metrics) retried(source Source) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) returned(source Source, n int) {
	if m == nil || n == 0 {
		return
	}
	m.candidates.WithLabelValues(string(source)).Add(float64(n))
}
