package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hedisam/chainfeed/internal/enrich/mocks"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/glacier"
	"github.com/hedisam/chainfeed/internal/store"
	"github.com/hedisam/chainfeed/internal/store/memdb"
)

//go:generate moq -out mocks/chain_store.go -pkg mocks -skip-ensure . ChainStore
//go:generate moq -out mocks/metadata_source.go -pkg mocks -skip-ensure . MetadataSource

var (
	now       = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	avalanche = &feed.ChainInfo{
		ChainID: "43114",
		Name:    "Avalanche (C-Chain)",
		LogoURI: "https://images.ctfassets.net/avax.svg",
		NativeToken: feed.Token{
			Name:     "Avalanche",
			Symbol:   "AVAX",
			Decimals: 18,
		},
	}
)

func TestEnrich(t *testing.T) {
	tests := map[string]struct {
		stored              *store.ChainEntry
		storeGetErr         error
		storePutErr         error
		sourceInfo          *feed.ChainInfo
		sourceErr           error
		expectedSourceCalls int
		expectedPutCalls    int
		expectedEntry       *store.ChainEntry
		errContains         string
	}{
		"first lookup": {
			sourceInfo:          avalanche,
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			expectedEntry: &store.ChainEntry{
				ChainID:     "43114",
				Info:        avalanche,
				FetchedAt:   now,
				LastAttempt: now,
			},
		},
		"fresh entry is not looked up": {
			stored: &store.ChainEntry{
				ChainID:   "43114",
				Info:      avalanche,
				FetchedAt: now.Add(-4 * time.Minute),
			},
		},
		"expired entry is refreshed": {
			stored: &store.ChainEntry{
				ChainID:   "43114",
				Info:      &feed.ChainInfo{ChainID: "43114", Name: "old name"},
				FetchedAt: now.Add(-5 * time.Minute),
			},
			sourceInfo:          avalanche,
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			expectedEntry: &store.ChainEntry{
				ChainID:     "43114",
				Info:        avalanche,
				FetchedAt:   now,
				LastAttempt: now,
			},
		},
		"unknown chain is marked not found": {
			sourceErr:           glacier.ErrNotFound,
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			expectedEntry: &store.ChainEntry{
				ChainID:     "43114",
				NotFound:    true,
				LastAttempt: now,
			},
		},
		"not found chain is never looked up again": {
			stored: &store.ChainEntry{
				ChainID:  "43114",
				NotFound: true,
			},
		},
		"failure keeps stale metadata": {
			stored: &store.ChainEntry{
				ChainID:   "43114",
				Info:      avalanche,
				FetchedAt: now.Add(-time.Hour),
			},
			sourceErr:           errors.New("received unexpected status: 503 Service Unavailable"),
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			expectedEntry: &store.ChainEntry{
				ChainID:     "43114",
				Info:        avalanche,
				FetchedAt:   now.Add(-time.Hour),
				Failures:    1,
				LastAttempt: now,
			},
		},
		"recent failure is not retried": {
			stored: &store.ChainEntry{
				ChainID:     "43114",
				Failures:    1,
				LastAttempt: now.Add(-10 * time.Second),
			},
		},
		"failure is retried after the retry interval": {
			stored: &store.ChainEntry{
				ChainID:     "43114",
				Failures:    2,
				LastAttempt: now.Add(-time.Minute),
			},
			sourceInfo:          avalanche,
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			expectedEntry: &store.ChainEntry{
				ChainID:     "43114",
				Info:        avalanche,
				FetchedAt:   now,
				LastAttempt: now,
			},
		},
		"store get failure": {
			storeGetErr: errors.New("dummy error"),
			errContains: "could not get chain entry from store: dummy error",
		},
		"store put failure": {
			sourceInfo:          avalanche,
			storePutErr:         errors.New("dummy error"),
			expectedSourceCalls: 1,
			expectedPutCalls:    1,
			errContains:         "could not put chain entry into store: dummy error",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			storeMock := &mocks.ChainStoreMock{
				GetChainFunc: func(ctx context.Context, chainID string) (*store.ChainEntry, error) {
					assert.Equal(t, "43114", chainID)
					if test.storeGetErr != nil {
						return nil, test.storeGetErr
					}
					if test.stored == nil {
						return nil, store.ErrNotFound
					}
					cp := *test.stored
					return &cp, nil
				},
				PutChainFunc: func(ctx context.Context, entry *store.ChainEntry) error {
					return test.storePutErr
				},
			}
			sourceMock := &mocks.MetadataSourceMock{
				GetChainFunc: func(ctx context.Context, chainID string) (*feed.ChainInfo, error) {
					return test.sourceInfo, test.sourceErr
				},
			}
			e := New(logrus.New(), storeMock, sourceMock, WithNow(func() time.Time { return now }), WithLookupsPerSecond(0))

			err := e.enrich(context.Background(), "43114")
			assert.Len(t, sourceMock.GetChainCalls(), test.expectedSourceCalls)
			require.Len(t, storeMock.PutChainCalls(), test.expectedPutCalls)
			if test.errContains != "" {
				require.ErrorContains(t, err, test.errContains)
				return
			}
			require.NoError(t, err)
			if test.expectedEntry != nil {
				assert.Equal(t, test.expectedEntry, storeMock.PutChainCalls()[0].Entry)
			}
		})
	}
}

func TestEnrichCancelledWhileThrottled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	storeMock := &mocks.ChainStoreMock{
		GetChainFunc: func(ctx context.Context, chainID string) (*store.ChainEntry, error) {
			// the session is torn down while the lookup waits for the limiter
			cancel()
			return nil, store.ErrNotFound
		},
	}
	sourceMock := &mocks.MetadataSourceMock{
		GetChainFunc: func(ctx context.Context, chainID string) (*feed.ChainInfo, error) {
			return avalanche, nil
		},
	}
	e := New(logrus.New(), storeMock, sourceMock, WithNow(func() time.Time { return now }))

	err := e.enrich(ctx, "43114")
	require.NoError(t, err)
	assert.Empty(t, sourceMock.GetChainCalls())
	assert.Empty(t, storeMock.PutChainCalls())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	chains := memdb.NewChainStore()
	require.NoError(t, chains.PutChain(ctx, &store.ChainEntry{ChainID: "43114", Info: avalanche}))
	require.NoError(t, chains.PutChain(ctx, &store.ChainEntry{ChainID: "99", NotFound: true}))

	assert.Equal(t, avalanche, Resolve(ctx, chains, "43114"))
	assert.Equal(t, feed.PlaceholderChain("99"), Resolve(ctx, chains, "99"))
	assert.Equal(t, feed.PlaceholderChain("7"), Resolve(ctx, chains, "7"))
}

func TestStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	chains := memdb.NewChainStore()
	sourceMock := &mocks.MetadataSourceMock{
		GetChainFunc: func(ctx context.Context, chainID string) (*feed.ChainInfo, error) {
			if chainID == "43114" {
				return avalanche, nil
			}
			return nil, glacier.ErrNotFound
		},
	}
	e := New(logrus.New(), chains, sourceMock, WithLookupsPerSecond(0))

	in := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Start(ctx, in)
	}()

	for _, id := range []string{"43114", "43114", "1", "1"} {
		in <- id
	}
	cancel()
	<-done

	assert.Len(t, sourceMock.GetChainCalls(), 2, "fresh and unknown chains are not looked up twice")
	entry, err := chains.GetChain(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, entry.NotFound)
	assert.Equal(t, avalanche, Resolve(context.Background(), chains, "43114"))
}
