package stream

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/dedup"
	"github.com/hedisam/chainfeed/internal/feed"
)

const (
	DefaultFastDelay        = 50 * time.Millisecond
	DefaultSlowDelay        = 100 * time.Millisecond
	DefaultBacklogThreshold = 5
)

type State int

const (
	Idle State = iota
	Draining
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Draining:
		return "draining"
	default:
		return "unknown"
	}
}

// Inserter receives the records the drainer hands over for display.
type Inserter interface {
	Insert(record feed.Record)
}

type DrainConfig struct {
	// FastDelay is the pause between two inserts while the queue holds more than
	// BacklogThreshold records.
	FastDelay time.Duration
	// SlowDelay is the pause between two inserts otherwise.
	SlowDelay        time.Duration
	BacklogThreshold int
}

func (c DrainConfig) withDefaults() DrainConfig {
	if c.FastDelay <= 0 {
		c.FastDelay = DefaultFastDelay
	}
	if c.SlowDelay <= 0 {
		c.SlowDelay = DefaultSlowDelay
	}
	if c.BacklogThreshold <= 0 {
		c.BacklogThreshold = DefaultBacklogThreshold
	}
	return c
}

// Drainer moves records from a Queue into the view one tick at a time. At most
// one drain cycle runs at a time: Kick starts a cycle only while Idle, and the
// cycle ends when a tick finds the queue empty. All methods must be called from
// the clock's thread.
type Drainer struct {
	logger *logrus.Logger
	kind   feed.Kind
	clock  clock.Clock
	cfg    DrainConfig
	queue  *Queue
	seen   *dedup.SeenSet
	view   Inserter

	state  State
	active bool
	timer  clock.Timer

	displayed uint64
	skipped   uint64

	onIdle func()
}

type DrainerOption func(*Drainer)

// WithIdleHook calls fn whenever a drain cycle finishes.
func WithIdleHook(fn func()) DrainerOption {
	return func(d *Drainer) {
		d.onIdle = fn
	}
}

func NewDrainer(logger *logrus.Logger, kind feed.Kind, clk clock.Clock, cfg DrainConfig, queue *Queue, seen *dedup.SeenSet, view Inserter, opts ...DrainerOption) *Drainer {
	d := &Drainer{
		logger: logger,
		kind:   kind,
		clock:  clk,
		cfg:    cfg.withDefaults(),
		queue:  queue,
		seen:   seen,
		view:   view,
		state:  Idle,
		active: true,
	}
	for opt := range slices.Values(opts) {
		opt(d)
	}
	return d
}

// Kick starts a drain cycle if the drainer is Idle. The first record is inserted
// right away. It returns false if a cycle is already running or the drainer was
// stopped.
func (d *Drainer) Kick() bool {
	if !d.active || d.state == Draining {
		return false
	}

	d.state = Draining
	d.logger.WithFields(logrus.Fields{
		"kind":  d.kind,
		"queue": d.queue.Len(),
	}).Debug("Drain cycle started")
	d.tick()
	return true
}

// Stop ends the current cycle. Ticks already handed to the clock become no-ops.
func (d *Drainer) Stop() {
	d.active = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.state = Idle
}

func (d *Drainer) State() State {
	return d.state
}

// Displayed returns the number of records inserted into the view.
func (d *Drainer) Displayed() uint64 {
	return d.displayed
}

// Skipped returns the number of dequeued records dropped because they were
// already displayed.
func (d *Drainer) Skipped() uint64 {
	return d.skipped
}

func (d *Drainer) tick() {
	d.timer = nil
	if !d.active {
		return
	}

	record, ok := d.queue.Dequeue()
	queueDepth.WithLabelValues(string(d.kind)).Set(float64(d.queue.Len()))
	if !ok {
		d.state = Idle
		d.logger.WithField("kind", d.kind).Debug("Drain cycle finished")
		if d.onIdle != nil {
			d.onIdle()
		}
		return
	}

	if !d.seen.Add(record.ID()) {
		d.skipped++
		duplicateRecords.WithLabelValues(string(d.kind), stageDrain).Inc()
		d.schedule(0)
		return
	}

	d.displayed++
	displayedRecords.WithLabelValues(string(d.kind)).Inc()
	d.view.Insert(record)

	delay := d.cfg.SlowDelay
	if d.queue.Len() > d.cfg.BacklogThreshold {
		delay = d.cfg.FastDelay
	}
	d.schedule(delay)
}

func (d *Drainer) schedule(delay time.Duration) {
	d.timer = d.clock.AfterFunc(delay, d.tick)
}
