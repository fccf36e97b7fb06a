package memdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/store"
	"github.com/hedisam/chainfeed/internal/store/memdb"
)

func TestFeedStore(t *testing.T) {
	ctx := context.Background()
	s := memdb.NewFeedStore()

	_, err := s.GetSnapshot(ctx, feed.KindBlock)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.PutSnapshot(ctx, &store.Snapshot{Kind: feed.KindTransaction, Version: 1}))
	require.NoError(t, s.PutSnapshot(ctx, &store.Snapshot{Kind: feed.KindBlock, Version: 2}))
	require.NoError(t, s.PutSnapshot(ctx, &store.Snapshot{Kind: feed.KindBlock, Version: 1}), "stale snapshots are ignored")
	require.NoError(t, s.PutSnapshot(ctx, nil))

	got, err := s.GetSnapshot(ctx, feed.KindBlock)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Version)

	all, err := s.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, feed.KindBlock, all[0].Kind)
	assert.Equal(t, feed.KindTransaction, all[1].Kind)
}

func TestChainStore(t *testing.T) {
	ctx := context.Background()
	s := memdb.NewChainStore(memdb.WithMemSize(1))

	_, err := s.GetChain(ctx, "43114")
	require.ErrorIs(t, err, store.ErrNotFound)

	entry := &store.ChainEntry{
		ChainID:   "43114",
		Info:      &feed.ChainInfo{ChainID: "43114", Name: "Avalanche C-Chain"},
		FetchedAt: time.Unix(100, 0),
	}
	require.NoError(t, s.PutChain(ctx, entry))

	entry.Failures = 10
	got, err := s.GetChain(ctx, "43114")
	require.NoError(t, err)
	assert.Zero(t, got.Failures, "store keeps its own copy")
	assert.Equal(t, "Avalanche C-Chain", got.Info.Name)

	got.NotFound = true
	again, err := s.GetChain(ctx, "43114")
	require.NoError(t, err)
	assert.False(t, again.NotFound)
}
