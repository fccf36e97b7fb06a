package memdb

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/store"
)

// FeedStore holds the latest published snapshot of every feed.
type FeedStore struct {
	snapshots map[feed.Kind]*store.Snapshot
	mu        sync.RWMutex
}

func NewFeedStore(opts ...Option) *FeedStore {
	cfg := newConfig(opts)
	return &FeedStore{
		snapshots: make(map[feed.Kind]*store.Snapshot, cfg.memSize),
	}
}

// PutSnapshot replaces the snapshot of the snapshot's feed. A snapshot older than
// the stored one is ignored.
func (s *FeedStore) PutSnapshot(_ context.Context, snapshot *store.Snapshot) error {
	if snapshot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.snapshots[snapshot.Kind]
	if ok && current.Version > snapshot.Version {
		return nil
	}
	s.snapshots[snapshot.Kind] = snapshot
	return nil
}

// GetSnapshot returns the latest snapshot of the given feed.
func (s *FeedStore) GetSnapshot(_ context.Context, kind feed.Kind) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[kind]
	if !ok {
		return nil, store.ErrNotFound
	}
	return snapshot, nil
}

// ListSnapshots returns the latest snapshot of every feed ordered by kind.
func (s *FeedStore) ListSnapshots(_ context.Context) ([]*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.SortedFunc(maps.Values(s.snapshots), func(a, b *store.Snapshot) int {
		return cmp.Compare(a.Kind, b.Kind)
	}), nil
}
