// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitledger"

// Metrics holds every collector the server updates.
type Metrics struct {
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	SplitsCalculated prometheus.Counter
	SharesWritten    prometheus.Counter
	LedgerEntities   *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		SplitsCalculated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_calculated_total",
			Help:      "Successful equal-split calculations.",
		}),
		SharesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_written_total",
			Help:      "Expense share rows written by split calculations.",
		}),
		LedgerEntities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_entities",
			Help:      "Cached ledger entities, by kind.",
		}, []string{"kind"}),
		registry: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.SplitsCalculated,
		m.SharesWritten,
		m.LedgerEntities,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSplit records one split that wrote n share rows.
func (m *Metrics) ObserveSplit(n int) {
	if m == nil {
		return
	}
	m.SplitsCalculated.Inc()
	m.SharesWritten.Add(float64(n))
}

// SetEntities records the cached entity counts.
func (m *Metrics) SetEntities(participants, groups, expenses int) {
	if m == nil {
		return
	}
	m.LedgerEntities.WithLabelValues("participants").Set(float64(participants))
	m.LedgerEntities.WithLabelValues("groups").Set(float64(groups))
	m.LedgerEntities.WithLabelValues("expenses").Set(float64(expenses))
}
