package store

import (
	"errors"
	"time"

	"github.com/hedisam/chainfeed/internal/feed"
)

var (
	// ErrNotFound is returned when an item in store is not found.
	ErrNotFound = errors.New("not found")
)

// Snapshot is the published state of one feed as the render layer sees it.
type Snapshot struct {
	Kind feed.Kind
	// Visible is ordered newest first.
	Visible []feed.Record
	Exiting []feed.Record
	// Version increases with every change of the visible or exiting records.
	Version   uint64
	UpdatedAt time.Time
	Stats     FeedStats
}

// FeedStats are the counters of a feed since its session started.
type FeedStats struct {
	Fetched         uint64 `json:"fetched"`
	FetchFailures   uint64 `json:"fetchFailures"`
	FilteredSeen    uint64 `json:"filteredSeen"`
	AlreadyQueued   uint64 `json:"alreadyQueued"`
	OverflowDropped uint64 `json:"overflowDropped"`
	SkippedAtDrain  uint64 `json:"skippedAtDrain"`
	Displayed       uint64 `json:"displayed"`
	Evicted         uint64 `json:"evicted"`
	QueueDepth      int    `json:"queueDepth"`
	SeenIDs         int    `json:"seenIds"`
	DrainState      string `json:"drainState"`
	LastBatchSize   int    `json:"lastBatchSize"`
	LastNewInBatch  int    `json:"lastNewInBatch"`
}

// ChainEntry is a cached chain metadata lookup.
type ChainEntry struct {
	ChainID string
	// Info is nil until a lookup succeeds. It is kept after later failures.
	Info      *feed.ChainInfo
	FetchedAt time.Time
	// NotFound marks chains the explorer does not know. They are never looked up again.
	NotFound bool
	// Failures counts the lookups that failed since the last success.
	Failures    int
	LastAttempt time.Time
}
