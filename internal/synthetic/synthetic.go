// Package synthetic generates random blocks and transactions for running the
// dashboard without access to the explorer API.
package synthetic

import (
	"context"
	"encoding/hex"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/glacier"
)

const (
	// DefaultBlockWindow is the number of blocks returned by every poll.
	DefaultBlockWindow = 5
	// DefaultTxWindow is the number of transactions returned by every poll.
	DefaultTxWindow = 10
)

// Chains are the demo chains records are spread across.
var Chains = []string{"X-Chain", "P-Chain", "C-Chain", "Subnet-1", "Subnet-2", "Subnet-3"}

var gwei = uint256.NewInt(1_000_000_000)

// Source mimics the "recent items" endpoints of the explorer: every call adds a
// few new records and returns the most recent window, newest first, so
// consecutive calls overlap.
type Source struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	height int64

	blocks []*feed.Block
	txs    []*feed.Transaction
}

type Option func(*Source)

// WithNow sets the clock used for record timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

func New(seed int64, opts ...Option) *Source {
	s := &Source{
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
		height: 1_000_000,
	}
	for opt := range slices.Values(opts) {
		opt(s)
	}
	return s
}

func (s *Source) LatestBlocks(_ context.Context) ([]*feed.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range s.rng.Intn(3) {
		s.height++
		s.blocks = append(s.blocks, &feed.Block{
			Hash:      s.hash(),
			Timestamp: s.now().UnixMilli(),
			Height:    s.height,
			ChainID:   s.chain(),
			TxCount:   s.rng.Intn(100),
			FeesSpent: s.amount(1_000_000),
		})
	}
	s.blocks = window(s.blocks, DefaultBlockWindow)
	return newestFirst(s.blocks), nil
}

func (s *Source) LatestTransactions(_ context.Context) ([]*feed.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range s.rng.Intn(5) {
		s.txs = append(s.txs, &feed.Transaction{
			Hash:      s.hash(),
			Timestamp: s.now().UnixMilli(),
			From:      s.address(),
			To:        s.address(),
			Value:     s.amount(100_000_000_000),
			ChainID:   s.chain(),
		})
	}
	s.txs = window(s.txs, DefaultTxWindow)
	return newestFirst(s.txs), nil
}

func (s *Source) LatestBlockRecords(ctx context.Context) ([]feed.Record, error) {
	blocks, err := s.LatestBlocks(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Records(blocks), nil
}

func (s *Source) LatestTransactionRecords(ctx context.Context) ([]feed.Record, error) {
	txs, err := s.LatestTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Records(txs), nil
}

// GetChain returns metadata for the demo chains and glacier.ErrNotFound for any
// other chain.
func (s *Source) GetChain(_ context.Context, chainID string) (*feed.ChainInfo, error) {
	if !slices.Contains(Chains, chainID) {
		return nil, glacier.ErrNotFound
	}
	return &feed.ChainInfo{
		ChainID: chainID,
		Name:    "Avalanche " + chainID,
		LogoURI: "/avax.svg",
		NativeToken: feed.Token{
			Name:     "Avalanche",
			Symbol:   "AVAX",
			Decimals: feed.DefaultDecimals,
		},
	}, nil
}

func (s *Source) hash() string {
	b := make([]byte, 32)
	s.rng.Read(b)
	return "0x" + hex.EncodeToString(b)
}

func (s *Source) address() string {
	b := make([]byte, 20)
	s.rng.Read(b)
	return "0x" + hex.EncodeToString(b)
}

func (s *Source) chain() string {
	return Chains[s.rng.Intn(len(Chains))]
}

// amount returns a random wei amount below maxGwei gwei.
func (s *Source) amount(maxGwei int64) string {
	v := uint256.NewInt(uint64(s.rng.Int63n(maxGwei)))
	return v.Mul(v, gwei).Dec()
}

func window[T any](items []T, size int) []T {
	if len(items) <= size {
		return items
	}
	return slices.Clone(items[len(items)-size:])
}

func newestFirst[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}
