// Package metrics exposes Prometheus metrics for claims and upstream calls.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records claim outcomes and upstream request latency.
type Collector struct {
	claimOutcomes    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		claimOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orcid_creditor_claims_total",
			Help: "Claim attempts by outcome",
		}, []string{"outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orcid_creditor_upstream_request_duration_seconds",
			Help:    "Latency of requests to ORCID and the ledger proxy",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream", "code", "method"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orcid_creditor_upstream_requests_total",
			Help: "Requests to ORCID and the ledger proxy by status code",
		}, []string{"upstream", "code", "method"}),
	}

	reg.MustRegister(
		c.claimOutcomes,
		c.upstreamDuration,
		c.upstreamRequests,
	)

	return c
}

func (c *Collector) RecordClaimOutcome(outcome string) {
	c.claimOutcomes.WithLabelValues(outcome).Inc()
}

// InstrumentClient returns a copy of base whose transport records metrics under
// the given upstream label.
func (c *Collector) InstrumentClient(upstream string, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	labels := prometheus.Labels{"upstream": upstream}
	transport := promhttp.InstrumentRoundTripperCounter(
		c.upstreamRequests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(c.upstreamDuration.MustCurryWith(labels), next),
	)

	client := *base
	client.Transport = transport
	return &client
}

// Handler serves the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
