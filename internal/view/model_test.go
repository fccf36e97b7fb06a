package view_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chainfeed/internal/clock"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/view"
)

const exitDelay = 200 * time.Millisecond

func block(id string) feed.Record {
	return &feed.Block{Hash: id, ChainID: "43114"}
}

func newModel(maxItems int, opts ...view.Option) (*view.Model, *clock.Manual) {
	clk := clock.NewManual(time.Unix(0, 0))
	m := view.New(logrus.New(), feed.KindBlock, clk, view.Config{MaxItems: maxItems, ExitDelay: exitDelay}, opts...)
	return m, clk
}

func TestInsert(t *testing.T) {
	tests := map[string]struct {
		maxItems        int
		inserts         []string
		expectedVisible []string
		expectedExiting []string
	}{
		"newest first": {
			maxItems:        5,
			inserts:         []string{"a", "b", "c"},
			expectedVisible: []string{"c", "b", "a"},
			expectedExiting: []string{},
		},
		"full without eviction": {
			maxItems:        3,
			inserts:         []string{"a", "b", "c"},
			expectedVisible: []string{"c", "b", "a"},
			expectedExiting: []string{},
		},
		"fourth insert evicts the first": {
			maxItems:        3,
			inserts:         []string{"a", "b", "c", "d"},
			expectedVisible: []string{"d", "c", "b"},
			expectedExiting: []string{"a"},
		},
		"several evictions keep order": {
			maxItems:        2,
			inserts:         []string{"a", "b", "c", "d", "e"},
			expectedVisible: []string{"e", "d"},
			expectedExiting: []string{"a", "b", "c"},
		},
		"duplicate insert is rejected": {
			maxItems:        3,
			inserts:         []string{"a", "b", "a"},
			expectedVisible: []string{"b", "a"},
			expectedExiting: []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m, _ := newModel(test.maxItems)
			for _, id := range test.inserts {
				m.Insert(block(id))
				require.NoError(t, m.Validate())
			}

			assert.Equal(t, test.expectedVisible, feed.IDs(m.Visible()))
			assert.Equal(t, test.expectedExiting, feed.IDs(m.Exiting()))
		})
	}
}

func TestExitLifecycle(t *testing.T) {
	var snapshots []view.Snapshot
	m, clk := newModel(3, view.WithOnChange(func(s view.Snapshot) {
		snapshots = append(snapshots, s)
	}))

	for _, id := range []string{"r1", "r2", "r3", "r4"} {
		m.Insert(block(id))
	}
	assert.Equal(t, []string{"r1"}, feed.IDs(m.Exiting()), "evicted record enters the exit lifecycle immediately")
	assert.Equal(t, []string{"r4", "r3", "r2"}, feed.IDs(m.Visible()))

	clk.Advance(exitDelay - time.Millisecond)
	assert.Equal(t, []string{"r1"}, feed.IDs(m.Exiting()), "still fading out before the delay elapses")

	clk.Advance(time.Millisecond)
	assert.Empty(t, m.Exiting())
	assert.Equal(t, []string{"r4", "r3", "r2"}, feed.IDs(m.Visible()))

	require.Len(t, snapshots, 5, "four inserts and one exit removal")
	last := snapshots[len(snapshots)-1]
	assert.Equal(t, uint64(5), last.Version)
	assert.Equal(t, uint64(1), last.Evicted)
	assert.Empty(t, last.Exiting)
	assert.Equal(t, []string{"r1"}, feed.IDs(snapshots[3].Exiting))
}

func TestReinsertedRecordLeavesExiting(t *testing.T) {
	m, clk := newModel(1)
	m.Insert(block("a"))
	m.Insert(block("b"))
	require.Equal(t, []string{"a"}, feed.IDs(m.Exiting()))

	m.Insert(block("a"))
	require.NoError(t, m.Validate())
	assert.Equal(t, []string{"a"}, feed.IDs(m.Visible()))
	assert.Equal(t, []string{"b"}, feed.IDs(m.Exiting()))

	clk.Advance(exitDelay)
	assert.Empty(t, m.Exiting())
	assert.Equal(t, []string{"a"}, feed.IDs(m.Visible()))
	assert.Zero(t, clk.Pending())
}

func TestDispose(t *testing.T) {
	var changes int
	m, clk := newModel(1, view.WithOnChange(func(view.Snapshot) { changes++ }))
	m.Insert(block("a"))
	m.Insert(block("b"))
	require.Equal(t, 1, clk.Pending())

	m.Dispose()
	assert.Zero(t, clk.Pending(), "pending exit timers are cancelled")
	assert.Empty(t, m.Exiting())

	m.Insert(block("c"))
	clk.Advance(time.Second)
	assert.Equal(t, 2, changes)
	assert.Equal(t, []string{"b"}, feed.IDs(m.Visible()))

	m.Dispose()
}

func TestDefaults(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m := view.New(logrus.New(), feed.KindTransaction, clk, view.Config{})
	for i := range view.DefaultMaxItems + 1 {
		m.Insert(block(fmt.Sprintf("tx-%d", i)))
	}
	assert.Equal(t, view.DefaultMaxItems, m.Len())
	require.Len(t, m.Exiting(), 1)

	clk.Advance(view.DefaultExitDelay)
	assert.Empty(t, m.Exiting())
}

func TestRandomInsertsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m, clk := newModel(5)

	for range 2000 {
		m.Insert(block(fmt.Sprintf("id-%d", rng.Intn(40))))
		require.NoError(t, m.Validate())
		require.LessOrEqual(t, m.Len(), 5)
		clk.Advance(time.Duration(rng.Intn(100)) * time.Millisecond)
		require.NoError(t, m.Validate())
	}
}
