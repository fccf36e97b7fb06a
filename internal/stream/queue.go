package stream

import (
	"slices"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/ringbuffer"
)

// DefaultQueueCapacity is the number of records a feed buffers for display.
const DefaultQueueCapacity = 50

// Queue is the FIFO of records waiting to be displayed. An id is pending at most
// once, and once the queue is full the oldest pending record is dropped.
type Queue struct {
	buf     *ringbuffer.RingBuffer[feed.Record]
	pending map[string]struct{}
}

func NewQueue(capacity uint) *Queue {
	if capacity == 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		buf:     ringbuffer.New[feed.Record](capacity),
		pending: make(map[string]struct{}, capacity),
	}
}

// Enqueue appends items to the tail in order. It returns the number of records
// added and the number of older records dropped to make room for them. Items
// whose id is already pending are skipped.
func (q *Queue) Enqueue(items []feed.Record) (added, dropped int) {
	for item := range slices.Values(items) {
		if item == nil {
			continue
		}
		if _, ok := q.pending[item.ID()]; ok {
			continue
		}

		evicted, ok := q.buf.PushEvict(item)
		if ok {
			delete(q.pending, evicted.ID())
			dropped++
		}
		q.pending[item.ID()] = struct{}{}
		added++
	}

	return added, dropped
}

// Dequeue pops the head of the queue.
func (q *Queue) Dequeue() (feed.Record, bool) {
	item, ok := q.buf.Pop()
	if !ok {
		return nil, false
	}
	delete(q.pending, item.ID())
	return item, true
}

func (q *Queue) Len() int {
	return q.buf.Size()
}
