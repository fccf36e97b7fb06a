// Package clock schedules the callbacks that drive the feed pipeline.
//
// Every feed, queue and view mutation happens on a single logical thread. A
// Clock owns that thread: timer callbacks and posted functions run one at a time
// and never concurrently with each other.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the callback has
	// already fired or been stopped. A callback that was already handed to the
	// clock's thread may still run, so callbacks must check their own liveness.
	Stop() bool
}

// Clock is the scheduling primitive the pipeline is built on.
type Clock interface {
	Now() time.Time
	// AfterFunc runs fn on the clock's thread once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Post runs fn on the clock's thread as soon as possible. It returns false if
	// the clock has shut down and fn will never run.
	Post(fn func()) bool
}
