package dex

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for Metrics.
const (
	kindPokemon = "pokemon"
	kindSpecies = "species"

	resultHit  = "hit"
	resultMiss = "miss"

	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Metrics counts Loader activity. A nil *Metrics records nothing.
type Metrics struct {
	cacheLookups     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	rejected         prometheus.Counter
}

// NewMetrics creates the Loader collectors and registers them on reg when
// reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "cache_lookups_total",
			Help:      "Loader cache lookups by payload kind and result.",
		}, []string{"kind", "result"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "resolve_rejected_total",
			Help:      "Resolutions rejected because another was in flight.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cacheLookups, m.upstreamRequests, m.rejected)
	}
	return m
}

func (m *Metrics) cacheLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := resultMiss
	if hit {
		result = resultHit
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) upstreamRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = outcomeNotFound
	case err != nil:
		outcome = outcomeError
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) resolveRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}
