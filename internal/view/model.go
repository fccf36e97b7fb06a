// Package view holds the records a feed currently shows and the ones playing
// their exit animation.
package view

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/ringbuffer"
)

const (
	// DefaultMaxItems is the number of records a feed shows at once.
	DefaultMaxItems = 20
	// DefaultExitDelay matches the render layer's exit transition.
	DefaultExitDelay = 300 * time.Millisecond
)

var (
	ErrDuplicateVisible = errors.New("duplicate id in visible records")
	ErrExitingVisible   = errors.New("exiting record is still visible")
	ErrDuplicateExiting = errors.New("duplicate id in exiting records")
	ErrOverCapacity     = errors.New("visible records over capacity")
)

// Snapshot is an immutable copy of the model state.
type Snapshot struct {
	// Visible is ordered newest first.
	Visible []feed.Record
	// Exiting is ordered by eviction time, oldest eviction first.
	Exiting []feed.Record
	Version uint64
	Evicted uint64
}

type Config struct {
	MaxItems  int
	ExitDelay time.Duration
}

type exit struct {
	record feed.Record
	timer  clock.Timer
}

// Model is the view state of one feed: at most MaxItems visible records and the
// evicted records still fading out. It must only be used from the clock's thread.
type Model struct {
	logger   *logrus.Logger
	kind     feed.Kind
	clock    clock.Clock
	cfg      Config
	onChange func(Snapshot)

	visible    *ringbuffer.RingBuffer[feed.Record]
	visibleIDs map[string]struct{}
	exiting    []*exit
	version    uint64
	evicted    uint64
	disposed   bool
}

type Option func(*Model)

// WithOnChange registers fn to receive a snapshot after every change.
func WithOnChange(fn func(Snapshot)) Option {
	return func(m *Model) {
		m.onChange = fn
	}
}

func New(logger *logrus.Logger, kind feed.Kind, clk clock.Clock, cfg Config, opts ...Option) *Model {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	if cfg.ExitDelay <= 0 {
		cfg.ExitDelay = DefaultExitDelay
	}

	m := &Model{
		logger:     logger,
		kind:       kind,
		clock:      clk,
		cfg:        cfg,
		visible:    ringbuffer.New[feed.Record](uint(cfg.MaxItems)),
		visibleIDs: make(map[string]struct{}, cfg.MaxItems),
	}
	for opt := range slices.Values(opts) {
		opt(m)
	}
	return m
}

// Insert puts record on top of the visible records. When the model is full, the
// oldest visible record moves to the exiting records and is removed from them
// once the exit delay has elapsed.
func (m *Model) Insert(record feed.Record) {
	if m.disposed || record == nil {
		return
	}

	id := record.ID()
	if _, ok := m.visibleIDs[id]; ok {
		m.logger.WithFields(logrus.Fields{
			"kind": m.kind,
			"id":   id,
		}).Error("Rejected insert of a record that is already visible")
		invariantViolations.WithLabelValues(string(m.kind)).Inc()
		return
	}
	// a record coming back while fading out must not be shown twice
	m.cancelExit(id)

	if m.visible.IsFull() {
		oldest, _ := m.visible.Pop()
		delete(m.visibleIDs, oldest.ID())
		m.beginExit(oldest)
	}

	m.visible.Push(record)
	m.visibleIDs[id] = struct{}{}
	m.changed()
}

// Visible returns the visible records, newest first.
func (m *Model) Visible() []feed.Record {
	return slices.Collect(m.visible.Backward())
}

// Exiting returns the records playing their exit animation.
func (m *Model) Exiting() []feed.Record {
	records := make([]feed.Record, 0, len(m.exiting))
	for e := range slices.Values(m.exiting) {
		records = append(records, e.record)
	}
	return records
}

func (m *Model) Len() int {
	return m.visible.Size()
}

func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Visible: m.Visible(),
		Exiting: m.Exiting(),
		Version: m.version,
		Evicted: m.evicted,
	}
}

// Validate checks the model invariants: no duplicate visible ids, no more than
// MaxItems visible records, and exiting records disjoint from visible ones.
func (m *Model) Validate() error {
	if m.visible.Size() > m.cfg.MaxItems {
		return fmt.Errorf("%w: %d > %d", ErrOverCapacity, m.visible.Size(), m.cfg.MaxItems)
	}

	ids := make(map[string]struct{}, m.visible.Size())
	for r := range m.visible.All() {
		if _, ok := ids[r.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateVisible, r.ID())
		}
		ids[r.ID()] = struct{}{}
	}

	exitingIDs := make(map[string]struct{}, len(m.exiting))
	for e := range slices.Values(m.exiting) {
		id := e.record.ID()
		if _, ok := ids[id]; ok {
			return fmt.Errorf("%w: %s", ErrExitingVisible, id)
		}
		if _, ok := exitingIDs[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateExiting, id)
		}
		exitingIDs[id] = struct{}{}
	}

	return nil
}

// Dispose stops every pending exit timer. A disposed model ignores inserts and
// late timer callbacks.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for e := range slices.Values(m.exiting) {
		e.timer.Stop()
	}
	m.exiting = nil
}

func (m *Model) beginExit(record feed.Record) {
	m.cancelExit(record.ID())

	e := &exit{record: record}
	e.timer = m.clock.AfterFunc(m.cfg.ExitDelay, func() {
		m.finishExit(e)
	})
	m.exiting = append(m.exiting, e)
	m.evicted++
	evictions.WithLabelValues(string(m.kind)).Inc()
}

func (m *Model) finishExit(e *exit) {
	if m.disposed {
		return
	}

	idx := slices.Index(m.exiting, e)
	if idx == -1 {
		return
	}
	m.exiting = slices.Delete(m.exiting, idx, idx+1)
	m.changed()
}

func (m *Model) cancelExit(id string) {
	idx := slices.IndexFunc(m.exiting, func(e *exit) bool {
		return e.record.ID() == id
	})
	if idx == -1 {
		return
	}
	m.exiting[idx].timer.Stop()
	m.exiting = slices.Delete(m.exiting, idx, idx+1)
}

func (m *Model) changed() {
	m.version++
	err := m.Validate()
	if err != nil {
		m.logger.WithError(err).WithField("kind", m.kind).Error("View invariant violated")
		invariantViolations.WithLabelValues(string(m.kind)).Inc()
	}

	if m.onChange != nil {
		m.onChange(m.Snapshot())
	}
}
