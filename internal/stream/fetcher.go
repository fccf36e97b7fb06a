package stream

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/feed"
)

// Source returns the most recent records of one kind, newest first.
type Source interface {
	Latest(ctx context.Context) ([]feed.Record, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) ([]feed.Record, error)

func (fn SourceFunc) Latest(ctx context.Context) ([]feed.Record, error) {
	return fn(ctx)
}

// Fetcher polls a Source. A poll within minInterval of the previously accepted
// one, or while that one is still in flight, is dropped instead of being queued.
// Allow and Done must be called from the clock's thread; Fetch may run anywhere.
type Fetcher struct {
	logger      *logrus.Logger
	kind        feed.Kind
	clock       clock.Clock
	source      Source
	minInterval time.Duration

	lastCall time.Time
	inFlight bool

	fetched  atomic.Uint64
	failures atomic.Uint64
	lastSize atomic.Int64
}

func NewFetcher(logger *logrus.Logger, kind feed.Kind, clk clock.Clock, source Source, minInterval time.Duration) *Fetcher {
	return &Fetcher{
		logger:      logger,
		kind:        kind,
		clock:       clk,
		source:      source,
		minInterval: minInterval,
	}
}

// Allow reports whether a fetch may start now. On true the caller owns the
// in-flight slot and must release it with Done.
func (f *Fetcher) Allow() bool {
	now := f.clock.Now()
	if f.inFlight || (!f.lastCall.IsZero() && now.Sub(f.lastCall) < f.minInterval) {
		throttledPolls.WithLabelValues(string(f.kind)).Inc()
		return false
	}

	f.lastCall = now
	f.inFlight = true
	return true
}

// Done releases the in-flight slot taken by Allow.
func (f *Fetcher) Done() {
	f.inFlight = false
}

// Fetch calls the source once. A failing source yields an empty batch.
func (f *Fetcher) Fetch(ctx context.Context) []feed.Record {
	records, err := f.source.Latest(ctx)
	if err != nil {
		f.failures.Add(1)
		failedFetches.WithLabelValues(string(f.kind)).Inc()
		f.lastSize.Store(0)

		logger := f.logger.WithField("kind", f.kind).WithError(err)
		if ctx.Err() != nil {
			logger.Debug("Fetch cancelled")
			return nil
		}
		logger.Warn("Failed to fetch latest records, yielding an empty batch")
		return nil
	}

	f.fetched.Add(uint64(len(records)))
	f.lastSize.Store(int64(len(records)))
	fetchedRecords.WithLabelValues(string(f.kind)).Add(float64(len(records)))
	f.logger.WithFields(logrus.Fields{
		"kind":    f.kind,
		"records": len(records),
	}).Debug("Fetched latest records")

	return records
}

// Fetched returns the number of records received from the source.
func (f *Fetcher) Fetched() uint64 {
	return f.fetched.Load()
}

func (f *Fetcher) Failures() uint64 {
	return f.failures.Load()
}

// LastBatchSize returns the size of the most recent batch.
func (f *Fetcher) LastBatchSize() int {
	return int(f.lastSize.Load())
}
