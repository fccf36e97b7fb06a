package stream_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/dedup"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/stream"
)

type insertRecorder struct {
	clock *clock.Manual
	ids   []string
	at    []time.Duration
	start time.Time
}

func (r *insertRecorder) Insert(record feed.Record) {
	r.ids = append(r.ids, record.ID())
	r.at = append(r.at, r.clock.Now().Sub(r.start))
}

func newDrainer(t *testing.T) (*stream.Drainer, *stream.Queue, *dedup.SeenSet, *insertRecorder, *clock.Manual) {
	t.Helper()

	clk := clock.NewManual(time.Unix(0, 0))
	q := stream.NewQueue(20)
	seen := dedup.NewSeenSet(0)
	rec := &insertRecorder{clock: clk, start: clk.Now()}
	d := stream.NewDrainer(logrus.New(), feed.KindTransaction, clk, stream.DrainConfig{
		FastDelay:        50 * time.Millisecond,
		SlowDelay:        100 * time.Millisecond,
		BacklogThreshold: 2,
	}, q, seen, rec)
	return d, q, seen, rec, clk
}

func TestDrainerPacing(t *testing.T) {
	tests := map[string]struct {
		pending    []string
		expectedAt []time.Duration
	}{
		"slow when the queue is short": {
			pending:    []string{"a", "b", "c"},
			expectedAt: []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond},
		},
		"fast while backlogged": {
			pending: []string{"a", "b", "c", "d", "e"},
			// depth after each insert: 4 3 2 1 0
			expectedAt: []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, q, _, rec, clk := newDrainer(t)
			q.Enqueue(txs(test.pending...))

			require.True(t, d.Kick())
			assert.Equal(t, stream.Draining, d.State())
			clk.Advance(time.Second)

			assert.Equal(t, test.pending, rec.ids)
			assert.Equal(t, test.expectedAt, rec.at)
			assert.Equal(t, stream.Idle, d.State())
			assert.Equal(t, uint64(len(test.pending)), d.Displayed())
			assert.Zero(t, clk.Pending())
		})
	}
}

func TestDrainerKickIsExclusive(t *testing.T) {
	d, q, _, rec, clk := newDrainer(t)
	q.Enqueue(txs("a", "b"))
	require.True(t, d.Kick())
	require.Equal(t, []string{"a"}, rec.ids)

	q.Enqueue(txs("c"))
	assert.False(t, d.Kick(), "a running cycle is not started twice")
	assert.Equal(t, []string{"a"}, rec.ids)
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, rec.ids)
	assert.Equal(t, stream.Idle, d.State())

	q.Enqueue(txs("d"))
	assert.True(t, d.Kick(), "an idle drainer starts a new cycle")
	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.ids)
}

func TestDrainerSkipsSeenRecords(t *testing.T) {
	d, q, seen, rec, clk := newDrainer(t)
	seen.Add("b")
	seen.Add("c")
	q.Enqueue(txs("a", "b", "c", "d"))

	d.Kick()
	clk.Advance(100 * time.Millisecond)

	assert.Equal(t, []string{"a", "d"}, rec.ids)
	// depth 3 after the first insert selects the fast delay; skips add none
	assert.Equal(t, []time.Duration{0, 50 * time.Millisecond}, rec.at)
	assert.Equal(t, uint64(2), d.Skipped())
	assert.Equal(t, uint64(2), d.Displayed())
	assert.True(t, seen.Has("a"))
	assert.True(t, seen.Has("d"))
}

func TestDrainerStop(t *testing.T) {
	d, q, _, rec, clk := newDrainer(t)
	q.Enqueue(txs("a", "b", "c"))
	d.Kick()

	d.Stop()
	assert.Zero(t, clk.Pending())
	assert.Equal(t, stream.Idle, d.State())

	clk.Advance(time.Second)
	assert.Equal(t, []string{"a"}, rec.ids)
	assert.False(t, d.Kick(), "a stopped drainer never restarts")
	assert.Equal(t, 2, q.Len())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", stream.Idle.String())
	assert.Equal(t, "draining", stream.Draining.String())
	assert.Equal(t, "unknown", stream.State(7).String())
}
