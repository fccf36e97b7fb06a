package rest

import (
	"time"

	"github.com/hedisam/chainfeed/internal/feed"
	"github.com/hedisam/chainfeed/internal/network"
	"github.com/hedisam/chainfeed/internal/store"
)

// request and response types of the dashboard endpoints; path values are read
// into the request fields named by their json tags

type GetFeedRequest struct {
	Kind string `json:"kind"`
}

type GetFeedResponse struct {
	Kind      feed.Kind `json:"kind"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Items are ordered newest first.
	Items   []*Item `json:"items"`
	Exiting []*Item `json:"exiting"`
}

// Item is a feed record decorated with its chain metadata and display values.
type Item struct {
	ID        string          `json:"id"`
	Kind      feed.Kind       `json:"kind"`
	Timestamp int64           `json:"timestamp"`
	ShortHash string          `json:"shortHash"`
	Chain     *feed.ChainInfo `json:"chain"`

	Block       *feed.Block       `json:"block,omitempty"`
	Transaction *feed.Transaction `json:"transaction,omitempty"`

	// FeesDisplay is set for blocks, the remaining display fields for transactions.
	FeesDisplay  string `json:"feesDisplay,omitempty"`
	ValueDisplay string `json:"valueDisplay,omitempty"`
	ShortFrom    string `json:"shortFrom,omitempty"`
	ShortTo      string `json:"shortTo,omitempty"`
}

type GetChainRequest struct {
	ChainID string `json:"chainId"`
}

type GetChainResponse struct {
	Chain *feed.ChainInfo `json:"chain"`
}

type GetNetworkRequest struct{}

type GetNetworkResponse struct {
	Nodes []network.Node `json:"nodes"`
	Links []network.Link `json:"links"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Feeds []*FeedStats `json:"feeds"`
}

type FeedStats struct {
	Kind feed.Kind `json:"kind"`
	// DuplicatesDropped sums the duplicates dropped at every stage of the feed.
	DuplicatesDropped uint64    `json:"duplicatesDropped"`
	UpdatedAt         time.Time `json:"updatedAt"`
	store.FeedStats
}
