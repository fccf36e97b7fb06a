// Package enrich resolves the display metadata of the chains records belong to.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/glacier"
	"github.com/hedisam/chainfeed/internal/store"
	"github.com/hedisam/pipeline/chans"
)

const (
	// DefaultTTL is how long fetched metadata is considered fresh.
	DefaultTTL = 5 * time.Minute
	// DefaultRetryInterval is the pause after a failed lookup before the chain is
	// looked up again.
	DefaultRetryInterval = 30 * time.Second
	// DefaultLookupsPerSecond throttles calls to the metadata source.
	DefaultLookupsPerSecond = 5
)

// ChainGetter reads cached chain metadata.
type ChainGetter interface {
	GetChain(ctx context.Context, chainID string) (*store.ChainEntry, error)
}

type ChainStore interface {
	ChainGetter
	PutChain(ctx context.Context, entry *store.ChainEntry) error
}

// MetadataSource looks up chain metadata. It returns glacier.ErrNotFound for
// unknown chains.
type MetadataSource interface {
	GetChain(ctx context.Context, chainID string) (*feed.ChainInfo, error)
}

type Enricher struct {
	logger        *logrus.Logger
	chainStore    ChainStore
	source        MetadataSource
	limiter       ratelimit.Limiter
	ttl           time.Duration
	retryInterval time.Duration
	now           func() time.Time
}

type Option func(*Enricher)

func WithTTL(ttl time.Duration) Option {
	return func(e *Enricher) {
		e.ttl = ttl
	}
}

func WithRetryInterval(d time.Duration) Option {
	return func(e *Enricher) {
		e.retryInterval = d
	}
}

// WithLookupsPerSecond limits the lookups sent to the source. A non-positive
// rate disables the limit.
func WithLookupsPerSecond(rps int) Option {
	return func(e *Enricher) {
		if rps <= 0 {
			e.limiter = ratelimit.NewUnlimited()
			return
		}
		e.limiter = ratelimit.New(rps)
	}
}

// WithNow sets the clock used for freshness checks.
func WithNow(now func() time.Time) Option {
	return func(e *Enricher) {
		e.now = now
	}
}

func New(logger *logrus.Logger, chainStore ChainStore, source MetadataSource, opts ...Option) *Enricher {
	e := &Enricher{
		logger:        logger,
		chainStore:    chainStore,
		source:        source,
		limiter:       ratelimit.New(DefaultLookupsPerSecond),
		ttl:           DefaultTTL,
		retryInterval: DefaultRetryInterval,
		now:           time.Now,
	}
	for opt := range slices.Values(opts) {
		opt(e)
	}
	return e
}

// Start resolves the chain ids received on in until ctx is done.
func (e *Enricher) Start(ctx context.Context, in <-chan string) {
	for chainID := range chans.ReceiveOrDoneSeq(ctx, in) {
		err := e.enrich(ctx, chainID)
		if err != nil {
			e.logger.WithField("chain_id", chainID).WithError(err).Error("Failed to enrich chain")
			failedEnrichments.Inc()
		}
	}
}

// Resolve returns the cached metadata of chainID, or placeholders while it is
// unknown. It never calls the metadata source.
func Resolve(ctx context.Context, chains ChainGetter, chainID string) *feed.ChainInfo {
	entry, err := chains.GetChain(ctx, chainID)
	if err != nil || entry.Info == nil {
		return feed.PlaceholderChain(chainID)
	}
	return entry.Info
}

func (e *Enricher) enrich(ctx context.Context, chainID string) error {
	if chainID == "" {
		return nil
	}

	entry, err := e.chainStore.GetChain(ctx, chainID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		entry = &store.ChainEntry{ChainID: chainID}
	case err != nil:
		return fmt.Errorf("could not get chain entry from store: %w", err)
	}

	now := e.now()
	if !e.due(entry, now) {
		skippedLookups.Inc()
		return nil
	}

	e.limiter.Take()
	if ctx.Err() != nil {
		return nil
	}
	logger := e.logger.WithContext(ctx).WithField("chain_id", chainID)
	entry.LastAttempt = now
	info, err := e.source.GetChain(ctx, chainID)
	switch {
	case errors.Is(err, glacier.ErrNotFound):
		entry.NotFound = true
		entry.Info = nil
		lookups.WithLabelValues("not_found").Inc()
		logger.Info("Chain is unknown to the explorer, using placeholder metadata")
	case err != nil:
		if ctx.Err() != nil {
			return nil
		}
		entry.Failures++
		lookups.WithLabelValues("failed").Inc()
		logger := logger.WithError(err).WithField("failures", entry.Failures)
		if entry.Failures == 1 {
			logger.Warn("Failed to look up chain metadata, keeping cached values")
		} else {
			logger.Debug("Failed to look up chain metadata again")
		}
	default:
		entry.Info = info
		entry.FetchedAt = now
		entry.Failures = 0
		lookups.WithLabelValues("ok").Inc()
		logger.WithField("chain_name", info.Name).Debug("Resolved chain metadata")
	}

	err = e.chainStore.PutChain(ctx, entry)
	if err != nil {
		return fmt.Errorf("could not put chain entry into store: %w", err)
	}

	return nil
}

// due reports whether entry should be looked up at now.
func (e *Enricher) due(entry *store.ChainEntry, now time.Time) bool {
	switch {
	case entry.NotFound:
		return false
	case entry.Failures > 0 && now.Sub(entry.LastAttempt) < e.retryInterval:
		return false
	case entry.Info != nil && now.Sub(entry.FetchedAt) < e.ttl:
		return false
	default:
		return true
	}
}
