// Package dedup filters feed records that were already displayed.
package dedup

import (
	"slices"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/ringbuffer"
)

// Lookup reports whether a record id was already seen.
type Lookup interface {
	Has(id string) bool
}

// SeenSet remembers the ids of displayed records. A bounded set forgets its
// oldest ids first once it holds capacity ids.
type SeenSet struct {
	ids   map[string]struct{}
	order *ringbuffer.RingBuffer[string]
}

// NewSeenSet creates a SeenSet holding at most capacity ids. A zero capacity
// makes the set unbounded.
func NewSeenSet(capacity uint) *SeenSet {
	s := &SeenSet{
		ids: make(map[string]struct{}, capacity),
	}
	if capacity > 0 {
		s.order = ringbuffer.New[string](capacity)
	}
	return s
}

func (s *SeenSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records id and returns false if it was already present.
func (s *SeenSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}

	if s.order != nil {
		if forgotten, ok := s.order.PushEvict(id); ok {
			delete(s.ids, forgotten)
		}
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *SeenSet) Len() int {
	return len(s.ids)
}

// FilterNew returns the records of batch whose ids are not in seen, preserving
// their order. When an id repeats inside the batch only its first occurrence is
// kept. seen is not modified.
func FilterNew(batch []feed.Record, seen Lookup) []feed.Record {
	fresh := make([]feed.Record, 0, len(batch))
	inBatch := make(map[string]struct{}, len(batch))
	for record := range slices.Values(batch) {
		if record == nil {
			continue
		}

		id := record.ID()
		if _, dup := inBatch[id]; dup {
			continue
		}
		inBatch[id] = struct{}{}

		if seen != nil && seen.Has(id) {
			continue
		}
		fresh = append(fresh, record)
	}

	return fresh
}
