package rest

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/enrich"
	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/network"
	"github.com/hedisam/chainfeed/internal/store"
)

type FeedStore interface {
	GetSnapshot(ctx context.Context, kind feed.Kind) (*store.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]*store.Snapshot, error)
}

type ChainStore interface {
	GetChain(ctx context.Context, chainID string) (*store.ChainEntry, error)
}

// Server serves the published dashboard state. It never touches the running
// feeds, only the snapshots they publish.
type Server struct {
	logger     *logrus.Logger
	feedStore  FeedStore
	chainStore ChainStore
	graph      network.Source
}

func NewServer(logger *logrus.Logger, feedStore FeedStore, chainStore ChainStore, graph network.Source) *Server {
	return &Server{
		logger:     logger,
		feedStore:  feedStore,
		chainStore: chainStore,
		graph:      graph,
	}
}

func (s *Server) GetFeed(ctx context.Context, req *GetFeedRequest) (*GetFeedResponse, error) {
	logger := s.logger.WithContext(ctx).WithField("kind", req.Kind)

	kind, err := feed.ParseKind(req.Kind)
	if err != nil {
		logger.Warn("Unknown feed kind requested")
		return nil, NewErrf(http.StatusBadRequest, "Unknown feed kind %q, expected one of: blocks, transactions", req.Kind)
	}

	snapshot, err := s.feedStore.GetSnapshot(ctx, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Debug("Feed requested before its first snapshot")
			return nil, NewErrf(http.StatusServiceUnavailable, "Feed %q has no records yet, please retry later", kind)
		}
		logger.WithError(err).Error("Failed to get feed snapshot from store")
		return nil, NewErrf(http.StatusInternalServerError, "could not get feed snapshot from store")
	}

	return &GetFeedResponse{
		Kind:      snapshot.Kind,
		Version:   snapshot.Version,
		UpdatedAt: snapshot.UpdatedAt,
		Items:     s.decorate(ctx, logger, snapshot.Visible),
		Exiting:   s.decorate(ctx, logger, snapshot.Exiting),
	}, nil
}

func (s *Server) GetChain(ctx context.Context, req *GetChainRequest) (*GetChainResponse, error) {
	chainID := strings.TrimSpace(req.ChainID)
	if chainID == "" {
		s.logger.WithContext(ctx).Warn("Chain id is required to get chain metadata")
		return nil, NewErrf(http.StatusBadRequest, "Missing required field: 'chainId'")
	}

	return &GetChainResponse{
		Chain: enrich.Resolve(ctx, s.chainStore, chainID),
	}, nil
}

func (s *Server) GetNetwork(ctx context.Context, _ *GetNetworkRequest) (*GetNetworkResponse, error) {
	graph, err := s.graph.Graph(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to build network graph")
		return nil, NewErrf(http.StatusServiceUnavailable, "Network graph is unavailable, please retry later")
	}

	return &GetNetworkResponse{
		Nodes: graph.Nodes,
		Links: graph.Links,
	}, nil
}

func (s *Server) GetStats(ctx context.Context, _ *GetStatsRequest) (*GetStatsResponse, error) {
	snapshots, err := s.feedStore.ListSnapshots(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list feed snapshots from store")
		return nil, NewErrf(http.StatusInternalServerError, "could not list feed snapshots from store")
	}

	feeds := make([]*FeedStats, 0, len(snapshots))
	for snapshot := range slices.Values(snapshots) {
		stats := snapshot.Stats
		feeds = append(feeds, &FeedStats{
			Kind:              snapshot.Kind,
			DuplicatesDropped: stats.FilteredSeen + stats.AlreadyQueued + stats.SkippedAtDrain,
			UpdatedAt:         snapshot.UpdatedAt,
			FeedStats:         stats,
		})
	}

	return &GetStatsResponse{
		Feeds: feeds,
	}, nil
}

func (s *Server) decorate(ctx context.Context, logger *logrus.Entry, records []feed.Record) []*Item {
	items := make([]*Item, 0, len(records))
	for record := range slices.Values(records) {
		chain := enrich.Resolve(ctx, s.chainStore, record.Chain())
		item := &Item{
			ID:        record.ID(),
			Kind:      record.Kind(),
			Timestamp: record.UnixMilli(),
			ShortHash: feed.ShortHash(record.ID()),
			Chain:     chain,
		}

		switch r := record.(type) {
		case *feed.Block:
			item.Block = r
			item.FeesDisplay = displayUnits(logger, r.FeesSpent, chain.NativeToken.Decimals)
		case *feed.Transaction:
			item.Transaction = r
			item.ValueDisplay = displayUnits(logger, r.Value, chain.NativeToken.Decimals)
			item.ShortFrom = feed.ShortAddress(r.From)
			item.ShortTo = feed.ShortAddress(r.To)
		}
		items = append(items, item)
	}
	return items
}

// displayUnits formats a wei amount, falling back to the raw value when it is
// not a decimal integer.
func displayUnits(logger *logrus.Entry, value string, decimals uint8) string {
	formatted, err := feed.FormatUnits(value, decimals)
	if err != nil {
		logger.WithError(err).WithField("value", value).Debug("Failed to format amount")
		return value
	}
	return formatted
}
