package synthetic_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/glacier"
	"github.com/hedisam/chainfeed/internal/synthetic"
)

func TestLatestBlocksOverlap(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	s := synthetic.New(1, synthetic.WithNow(func() time.Time { return now }))

	var previous []*feed.Block
	var sawOverlap bool
	for range 50 {
		blocks, err := s.LatestBlocks(ctx)
		require.NoError(t, err)
		require.LessOrEqual(t, len(blocks), synthetic.DefaultBlockWindow)

		for i := 1; i < len(blocks); i++ {
			assert.Greater(t, blocks[i-1].Height, blocks[i].Height, "newest first")
		}
		for _, b := range blocks {
			assert.Contains(t, synthetic.Chains, b.ChainID)
			assert.Equal(t, now.UnixMilli(), b.Timestamp)
			assert.Len(t, b.Hash, 66)
			if slices.ContainsFunc(previous, func(p *feed.Block) bool { return p.Hash == b.Hash }) {
				sawOverlap = true
			}
		}
		previous = blocks
	}
	assert.True(t, sawOverlap, "consecutive polls return overlapping records")
}

func TestLatestTransactions(t *testing.T) {
	s := synthetic.New(2)
	var records []feed.Record
	for range 10 {
		var err error
		records, err = s.LatestTransactionRecords(context.Background())
		require.NoError(t, err)
	}

	require.NotEmpty(t, records)
	require.LessOrEqual(t, len(records), synthetic.DefaultTxWindow)
	for _, r := range records {
		tx, ok := r.(*feed.Transaction)
		require.True(t, ok)
		assert.Len(t, tx.From, 42)
		assert.Len(t, tx.To, 42)
		_, err := feed.FormatUnits(tx.Value, feed.DefaultDecimals)
		assert.NoError(t, err)
	}
}

func TestGetChain(t *testing.T) {
	s := synthetic.New(3)

	chain, err := s.GetChain(context.Background(), "C-Chain")
	require.NoError(t, err)
	assert.Equal(t, "C-Chain", chain.ChainID)
	assert.Equal(t, "AVAX", chain.NativeToken.Symbol)

	_, err = s.GetChain(context.Background(), "43114")
	require.ErrorIs(t, err, glacier.ErrNotFound)
}
