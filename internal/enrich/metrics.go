package enrich

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chainfeed/internal/custompromauto"
)

var (
	failedEnrichments = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "chain_enrichments_failed_total",
		Help:      "Total number of chain ids that could not be enriched because of a store failure",
	})

	lookups = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "chain_lookups_total",
		Help:      "Total number of chain metadata lookups by result",
	}, []string{"result"})
	skippedLookups = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "chain_lookups_skipped_total",
		Help:      "Total number of chain ids not looked up because their metadata is fresh, unknown or recently failed",
	})
)
