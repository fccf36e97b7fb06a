package stream

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chainfeed/internal/custompromauto"
)

// stages at which a duplicate record is dropped
const (
	stageFilter = "filter"
	stageQueue  = "queue"
	stageDrain  = "drain"
)

var (
	fetchedRecords = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "fetched_records_total",
		Help:      "Number of records returned by the data source",
	}, []string{"kind"})

	failedFetches = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "failed_fetches_total",
		Help:      "Number of polls that yielded an empty batch because the data source failed",
	}, []string{"kind"})

	throttledPolls = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "throttled_polls_total",
		Help:      "Number of polls dropped by the minimum fetch interval or an in-flight fetch",
	}, []string{"kind"})

	duplicateRecords = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "duplicate_records_total",
		Help:      "Number of records dropped because they were already seen or queued",
	}, []string{"kind", "stage"})

	overflowDroppedRecords = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "overflow_dropped_records_total",
		Help:      "Number of pending records dropped from a full ingest queue",
	}, []string{"kind"})

	displayedRecords = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "displayed_records_total",
		Help:      "Number of records inserted into the view",
	}, []string{"kind"})

	queueDepth = custompromauto.Auto().NewGaugeVec(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace,
		Name:      "ingest_queue_depth",
		Help:      "Number of records waiting in the ingest queue",
	}, []string{"kind"})
)
