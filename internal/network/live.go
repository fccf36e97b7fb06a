package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/feed"
)

// DefaultRefreshInterval is how long a listed chain graph is served before the
// chains are listed again.
const DefaultRefreshInterval = 5 * time.Minute

// ChainLister lists the chains known to the explorer.
type ChainLister interface {
	ListChains(ctx context.Context) ([]*feed.ChainInfo, error)
}

// Live builds a hub graph from the listed chains and caches it. A failed refresh
// serves the previous graph for another interval.
type Live struct {
	logger  *logrus.Logger
	lister  ChainLister
	refresh time.Duration
	now     func() time.Time

	mu       sync.Mutex
	graph    *Graph
	listedAt time.Time
}

func NewLive(logger *logrus.Logger, lister ChainLister, refresh time.Duration) *Live {
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	return &Live{
		logger:  logger,
		lister:  lister,
		refresh: refresh,
		now:     time.Now,
	}
}

func (l *Live) Graph(ctx context.Context) (*Graph, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.graph != nil && now.Sub(l.listedAt) < l.refresh {
		return l.graph, nil
	}

	chains, err := l.lister.ListChains(ctx)
	if err != nil {
		if l.graph != nil {
			l.logger.WithError(err).Warn("Failed to list chains, serving the previous network graph")
			l.listedAt = now
			return l.graph, nil
		}
		return nil, fmt.Errorf("could not list chains: %w", err)
	}

	l.graph = Hub(chains)
	l.listedAt = now
	l.logger.WithField("chains", len(chains)).Debug("Rebuilt network graph")
	return l.graph, nil
}
