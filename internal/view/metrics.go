package view

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chainfeed/internal/custompromauto"
)

var (
	evictions = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "view_evictions_total",
		Help:      "Number of visible records moved to the exit animation",
	}, []string{"kind"})

	invariantViolations = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "view_invariant_violations_total",
		Help:      "Number of detected duplicate or overlapping records in the view state",
	}, []string{"kind"})
)
