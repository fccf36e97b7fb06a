// Package dashboard wires the block and transaction feeds and the chain
// metadata enricher into a single session.
package dashboard

import (
	"context"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/enrich"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/stream"
)

const (
	// DefaultLookupBacklog is the number of chain ids buffered for the enricher.
	DefaultLookupBacklog = 64
)

type Sources struct {
	Blocks       stream.Source
	Transactions stream.Source
	Chains       enrich.MetadataSource
}

type Stores struct {
	Feeds  stream.Publisher
	Chains enrich.ChainStore
}

type Config struct {
	Blocks        stream.Config
	Transactions  stream.Config
	LookupBacklog int
	EnrichOptions []enrich.Option
}

// DefaultConfig returns the dashboard pacing for both feeds.
func DefaultConfig() Config {
	return Config{
		Blocks:        stream.DefaultConfig(feed.KindBlock),
		Transactions:  stream.DefaultConfig(feed.KindTransaction),
		LookupBacklog: DefaultLookupBacklog,
	}
}

// Session runs both feeds on one event loop until its context is cancelled.
type Session struct {
	logger  *logrus.Logger
	cfg     Config
	sources Sources
	stores  Stores
}

func New(logger *logrus.Logger, cfg Config, sources Sources, stores Stores) *Session {
	if cfg.LookupBacklog <= 0 {
		cfg.LookupBacklog = DefaultLookupBacklog
	}
	return &Session{
		logger:  logger,
		cfg:     cfg,
		sources: sources,
		stores:  stores,
	}
}

// Run blocks until ctx is done, then stops the feeds and waits for every
// goroutine it started.
func (s *Session) Run(ctx context.Context) {
	// the loop outlives ctx so that the teardown can still be posted onto it
	loopCtx, cancelLoop := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelLoop()

	var wg sync.WaitGroup
	loop := clock.NewLoop(loopCtx, s.logger, clock.DefaultBacklog)
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run()
	}()

	lookups := make(chan string, s.cfg.LookupBacklog)
	feeds := []*stream.Feed{
		stream.NewFeed(s.logger, s.cfg.Blocks, loop, s.sources.Blocks,
			stream.WithPublisher(s.stores.Feeds), stream.WithChainLookups(lookups)),
		stream.NewFeed(s.logger, s.cfg.Transactions, loop, s.sources.Transactions,
			stream.WithPublisher(s.stores.Feeds), stream.WithChainLookups(lookups)),
	}

	enricher := enrich.New(s.logger, s.stores.Chains, s.sources.Chains, s.cfg.EnrichOptions...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		enricher.Start(ctx, lookups)
	}()

	loop.Post(func() {
		for f := range slices.Values(feeds) {
			f.Start(ctx)
		}
	})
	s.logger.Info("Dashboard session started")

	<-ctx.Done()
	s.logger.Info("Stopping dashboard session")

	stopped := make(chan struct{})
	if loop.Post(func() {
		for f := range slices.Values(feeds) {
			f.Stop()
		}
		close(stopped)
	}) {
		<-stopped
	}
	for f := range slices.Values(feeds) {
		f.Wait()
	}

	cancelLoop()
	wg.Wait()
	s.logger.Info("Dashboard session stopped")
}
