// Package stream turns bursty, overlapping polls of a data source into a steady
// feed of records: every poll is deduplicated, buffered in a bounded queue and
// drained into the view one record at a time.
package stream

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/dedup"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/store"
	"github.com/hedisam/chainfeed/internal/view"
)

type Config struct {
	Kind             feed.Kind
	PollInterval     time.Duration
	MinFetchInterval time.Duration
	MaxItems         int
	QueueCapacity    uint
	// SeenCapacity bounds the remembered ids. Zero remembers every id.
	SeenCapacity     uint
	ExitDelay        time.Duration
	FastDelay        time.Duration
	SlowDelay        time.Duration
	BacklogThreshold int
}

// seenPerVisible sizes the seen ids relative to the visible window so an id
// outlives its stay in the view.
const seenPerVisible = 10

// DefaultConfig returns the pacing used for kind on the dashboard.
func DefaultConfig(kind feed.Kind) Config {
	cfg := Config{
		Kind:             kind,
		MaxItems:         view.DefaultMaxItems,
		QueueCapacity:    DefaultQueueCapacity,
		SeenCapacity:     seenPerVisible * view.DefaultMaxItems,
		FastDelay:        DefaultFastDelay,
		SlowDelay:        DefaultSlowDelay,
		BacklogThreshold: DefaultBacklogThreshold,
	}

	switch kind {
	case feed.KindBlock:
		cfg.PollInterval = time.Second
		cfg.MinFetchInterval = 500 * time.Millisecond
		cfg.ExitDelay = 200 * time.Millisecond
	default:
		cfg.PollInterval = 100 * time.Millisecond
		cfg.MinFetchInterval = 100 * time.Millisecond
		cfg.ExitDelay = 300 * time.Millisecond
	}
	return cfg
}

// WithMaxItems resizes the visible window and the seen ids along with it.
func (c Config) WithMaxItems(maxItems int) Config {
	c.MaxItems = maxItems
	c.SeenCapacity = uint(seenPerVisible * max(maxItems, 1))
	return c
}

// Publisher receives the state of a feed after every change.
type Publisher interface {
	PutSnapshot(ctx context.Context, snapshot *store.Snapshot) error
}

// Feed is the pipeline of one feed kind. It owns its seen ids, ingest queue,
// drainer and view; nothing is shared between feeds. Apart from Wait, every
// method must be called from the clock's thread.
type Feed struct {
	logger *logrus.Logger
	cfg    Config
	clock  clock.Clock

	fetcher *Fetcher
	seen    *dedup.SeenSet
	queue   *Queue
	drainer *Drainer
	view    *view.Model

	publisher Publisher
	lookups   chan<- string

	ctx       context.Context
	mounted   bool
	pollTimer clock.Timer
	inflight  sync.WaitGroup

	filteredSeen    uint64
	alreadyQueued   uint64
	overflowDropped uint64
	lastNewInBatch  int
}

type Option func(*Feed)

// WithPublisher publishes a store.Snapshot after every change of the feed.
func WithPublisher(p Publisher) Option {
	return func(f *Feed) {
		f.publisher = p
	}
}

// WithChainLookups forwards the chain ids of new records to lookups. Sends never
// block; ids are dropped while the receiver is busy and sent again with the next
// record of the same chain.
func WithChainLookups(lookups chan<- string) Option {
	return func(f *Feed) {
		f.lookups = lookups
	}
}

func NewFeed(logger *logrus.Logger, cfg Config, clk clock.Clock, source Source, opts ...Option) *Feed {
	f := &Feed{
		logger:  logger,
		cfg:     cfg,
		clock:   clk,
		ctx:     context.Background(),
		mounted: true,
		seen:    dedup.NewSeenSet(cfg.SeenCapacity),
		queue:   NewQueue(cfg.QueueCapacity),
		fetcher: NewFetcher(logger, cfg.Kind, clk, source, cfg.MinFetchInterval),
	}
	f.view = view.New(logger, cfg.Kind, clk, view.Config{
		MaxItems:  cfg.MaxItems,
		ExitDelay: cfg.ExitDelay,
	}, view.WithOnChange(f.publish))
	f.drainer = NewDrainer(logger, cfg.Kind, clk, DrainConfig{
		FastDelay:        cfg.FastDelay,
		SlowDelay:        cfg.SlowDelay,
		BacklogThreshold: cfg.BacklogThreshold,
	}, f.queue, f.seen, f.view, WithIdleHook(func() {
		f.publish(f.view.Snapshot())
	}))

	for opt := range slices.Values(opts) {
		opt(f)
	}
	return f
}

func (f *Feed) Kind() feed.Kind {
	return f.cfg.Kind
}

// Start polls the source right away and then every PollInterval until Stop.
// ctx bounds the fetches.
func (f *Feed) Start(ctx context.Context) {
	if !f.mounted {
		return
	}
	f.ctx = ctx
	f.logger.WithFields(logrus.Fields{
		"kind":          f.cfg.Kind,
		"poll_interval": f.cfg.PollInterval,
	}).Info("Starting feed")
	f.pollTick()
}

// Stop tears the feed down: the poll timer first, then the drain cycle, then the
// view's exit timers. Results of fetches still in flight are discarded.
func (f *Feed) Stop() {
	if !f.mounted {
		return
	}

	if f.pollTimer != nil {
		f.pollTimer.Stop()
		f.pollTimer = nil
	}
	f.mounted = false
	f.drainer.Stop()
	f.view.Dispose()
	f.logger.WithField("kind", f.cfg.Kind).Info("Feed stopped")
}

// Wait blocks until every fetch started by the feed has returned. It may be
// called from any goroutine.
func (f *Feed) Wait() {
	f.inflight.Wait()
}

// Ingest takes a newest-first batch, queues the records that were not seen yet
// oldest first and starts a drain cycle if none is running.
func (f *Feed) Ingest(batch []feed.Record) {
	if !f.mounted {
		return
	}

	fresh := dedup.FilterNew(batch, f.seen)
	f.filteredSeen += uint64(len(batch) - len(fresh))
	f.lastNewInBatch = len(fresh)
	if len(batch) > len(fresh) {
		duplicateRecords.WithLabelValues(string(f.cfg.Kind), stageFilter).Add(float64(len(batch) - len(fresh)))
	}
	if len(fresh) == 0 {
		return
	}

	slices.Reverse(fresh)
	added, dropped := f.queue.Enqueue(fresh)
	if skipped := len(fresh) - added; skipped > 0 {
		f.alreadyQueued += uint64(skipped)
		duplicateRecords.WithLabelValues(string(f.cfg.Kind), stageQueue).Add(float64(skipped))
	}
	if dropped > 0 {
		f.overflowDropped += uint64(dropped)
		overflowDroppedRecords.WithLabelValues(string(f.cfg.Kind)).Add(float64(dropped))
		f.logger.WithFields(logrus.Fields{
			"kind":    f.cfg.Kind,
			"dropped": dropped,
		}).Debug("Ingest queue overflowed, dropped oldest pending records")
	}
	queueDepth.WithLabelValues(string(f.cfg.Kind)).Set(float64(f.queue.Len()))

	f.requestChains(fresh)
	if !f.drainer.Kick() {
		f.publish(f.view.Snapshot())
	}
}

// Snapshot returns the current view state.
func (f *Feed) Snapshot() view.Snapshot {
	return f.view.Snapshot()
}

// Validate checks the view invariants.
func (f *Feed) Validate() error {
	return f.view.Validate()
}

func (f *Feed) Stats() store.FeedStats {
	snapshot := f.view.Snapshot()
	return store.FeedStats{
		Fetched:         f.fetcher.Fetched(),
		FetchFailures:   f.fetcher.Failures(),
		FilteredSeen:    f.filteredSeen,
		AlreadyQueued:   f.alreadyQueued,
		OverflowDropped: f.overflowDropped,
		SkippedAtDrain:  f.drainer.Skipped(),
		Displayed:       f.drainer.Displayed(),
		Evicted:         snapshot.Evicted,
		QueueDepth:      f.queue.Len(),
		SeenIDs:         f.seen.Len(),
		DrainState:      f.drainer.State().String(),
		LastBatchSize:   f.fetcher.LastBatchSize(),
		LastNewInBatch:  f.lastNewInBatch,
	}
}

func (f *Feed) pollTick() {
	if !f.mounted {
		return
	}
	f.poll()
	f.pollTimer = f.clock.AfterFunc(f.cfg.PollInterval, f.pollTick)
}

func (f *Feed) poll() {
	if !f.fetcher.Allow() {
		return
	}

	ctx := f.ctx
	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()

		batch := f.fetcher.Fetch(ctx)
		ok := f.clock.Post(func() {
			f.fetcher.Done()
			f.Ingest(batch)
		})
		if !ok {
			f.logger.WithField("kind", f.cfg.Kind).Debug("Discarding fetched batch, clock is closed")
		}
	}()
}

func (f *Feed) requestChains(records []feed.Record) {
	if f.lookups == nil {
		return
	}

	requested := make(map[string]struct{})
	for record := range slices.Values(records) {
		chainID := record.Chain()
		if _, ok := requested[chainID]; ok || chainID == "" {
			continue
		}
		requested[chainID] = struct{}{}

		select {
		case f.lookups <- chainID:
		default:
		}
	}
}

func (f *Feed) publish(snapshot view.Snapshot) {
	if f.publisher == nil {
		return
	}

	err := f.publisher.PutSnapshot(f.ctx, &store.Snapshot{
		Kind:      f.cfg.Kind,
		Visible:   snapshot.Visible,
		Exiting:   snapshot.Exiting,
		Version:   snapshot.Version,
		UpdatedAt: f.clock.Now(),
		Stats:     f.Stats(),
	})
	if err != nil {
		f.logger.WithError(err).WithField("kind", f.cfg.Kind).Error("Failed to publish feed snapshot")
	}
}
