package ringbuffer_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chainfeed/internal/ringbuffer"
)

func TestRingBuffer(t *testing.T) {
	tests := map[string]struct {
		capacity         uint
		push             []int
		pops             int
		expectedForward  []int
		expectedBackward []int
		expectedEvicted  []int
	}{
		"zero capacity defaults to one": {
			capacity:         0,
			push:             []int{1, 2},
			expectedForward:  []int{2},
			expectedBackward: []int{2},
			expectedEvicted:  []int{1},
		},
		"fills without eviction": {
			capacity:         3,
			push:             []int{1, 2, 3},
			expectedForward:  []int{1, 2, 3},
			expectedBackward: []int{3, 2, 1},
		},
		"evicts oldest on overflow": {
			capacity:         3,
			push:             []int{1, 2, 3, 4, 5},
			expectedForward:  []int{3, 4, 5},
			expectedBackward: []int{5, 4, 3},
			expectedEvicted:  []int{1, 2},
		},
		"wraps around after pops": {
			capacity:         3,
			push:             []int{1, 2, 3, 4},
			pops:             1,
			expectedForward:  []int{3, 4},
			expectedBackward: []int{4, 3},
			expectedEvicted:  []int{1},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			rb := ringbuffer.New[int](test.capacity)
			var evicted []int
			for item := range slices.Values(test.push) {
				if old, ok := rb.PushEvict(item); ok {
					evicted = append(evicted, old)
				}
			}
			for range test.pops {
				_, ok := rb.Pop()
				require.True(t, ok)
			}

			assert.Equal(t, test.expectedEvicted, evicted)
			assert.Equal(t, test.expectedForward, slices.Collect(rb.All()))
			assert.Equal(t, test.expectedBackward, slices.Collect(rb.Backward()))
			assert.Equal(t, len(test.expectedForward), rb.Size())
		})
	}
}

func TestRingBufferPushPop(t *testing.T) {
	rb := ringbuffer.New[string](2)

	_, ok := rb.Pop()
	assert.False(t, ok)

	require.True(t, rb.Push("a"))
	require.True(t, rb.Push("b"))
	assert.False(t, rb.Push("c"))
	assert.True(t, rb.IsFull())

	item, ok := rb.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", item)
	assert.Equal(t, 1, rb.Size())

	require.True(t, rb.Push("d"))
	assert.Equal(t, []string{"b", "d"}, slices.Collect(rb.All()))
}
