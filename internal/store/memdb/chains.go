package memdb

import (
	"context"
	"sync"

	"github.com/hedisam/chainfeed/internal/store"
)

// ChainStore caches chain metadata lookups keyed by chain id.
type ChainStore struct {
	chains map[string]*store.ChainEntry
	mu     sync.RWMutex
}

func NewChainStore(opts ...Option) *ChainStore {
	cfg := newConfig(opts)
	return &ChainStore{
		chains: make(map[string]*store.ChainEntry, cfg.memSize),
	}
}

// PutChain stores entry, replacing any previous entry for the same chain.
func (s *ChainStore) PutChain(_ context.Context, entry *store.ChainEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.chains[entry.ChainID] = &cp
	return nil
}

// GetChain returns a copy of the cached entry of chainID.
func (s *ChainStore) GetChain(_ context.Context, chainID string) (*store.ChainEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.chains[chainID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}
