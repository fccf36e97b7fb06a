package clock

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/pipeline/chans"
)

const (
	// DefaultBacklog is the number of posted callbacks buffered before Post blocks.
	DefaultBacklog = 256
)

// Loop is the wall-clock implementation of Clock. Callbacks are executed in the
// order they were posted by the goroutine calling Run.
type Loop struct {
	ctx    context.Context
	logger *logrus.Logger
	tasks  chan func()
}

// NewLoop creates a Loop that accepts callbacks until ctx is done.
func NewLoop(ctx context.Context, logger *logrus.Logger, backlog int) *Loop {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	return &Loop{
		ctx:    ctx,
		logger: logger,
		tasks:  make(chan func(), backlog),
	}
}

// Run executes posted callbacks until the loop's context is done.
func (l *Loop) Run() {
	var tasks <-chan func() = l.tasks
	l.logger.Debug("Event loop started")
	for task := range chans.ReceiveOrDoneSeq(l.ctx, tasks) {
		task()
	}
	l.logger.Debug("Event loop stopped")
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn for execution. It blocks while the backlog is full, so it must
// not be called from inside a loop callback.
func (l *Loop) Post(fn func()) bool {
	if l.ctx.Err() != nil {
		return false
	}
	return chans.SendOrDone(l.ctx, l.tasks, fn)
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		if !l.Post(fn) {
			l.logger.Debug("Dropping timer callback, event loop is closed")
		}
	})
}
