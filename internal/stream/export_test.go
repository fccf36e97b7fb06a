package stream

import (
	"context"

	"github.com/hedisam/chainfeed/internal/feed"
)

// Poll runs a throttled fetch synchronously. It returns nil if the poll was
// dropped.
func (f *Fetcher) Poll(ctx context.Context) []feed.Record {
	if !f.Allow() {
		return nil
	}
	defer f.Done()

	return f.Fetch(ctx)
}

// IDs returns the pending ids from head to tail.
func (q *Queue) IDs() []string {
	ids := make([]string, 0, q.buf.Size())
	for item := range q.buf.All() {
		ids = append(ids, item.ID())
	}
	return ids
}
