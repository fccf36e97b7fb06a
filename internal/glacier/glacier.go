// Package glacier is a client of the Avalanche Glacier explorer API.
package glacier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chainfeed/internal/feed"
)

const (
	DefaultBaseURL = "https://glacier-api.avax.network"
	apiKeyHeader   = "x-glacier-api-key"

	endpointBlocks       = "blocks"
	endpointTransactions = "transactions"
	endpointChain        = "chain"
	endpointChains       = "chains"
)

var (
	// ErrNotFound is returned when the explorer does not know the requested chain.
	ErrNotFound = errors.New("chain not found")
)

type Client struct {
	logger     *logrus.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a Glacier client. An empty apiKey sends unauthenticated requests.
func New(logger *logrus.Logger, httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// LatestBlocks returns the most recent blocks across chains, newest first.
func (c *Client) LatestBlocks(ctx context.Context) ([]*feed.Block, error) {
	var response struct {
		Blocks []*Block `json:"blocks"`
	}
	err := c.get(ctx, "/v1/blocks", endpointBlocks, &response)
	if err != nil {
		return nil, err
	}

	blocks := make([]*feed.Block, 0, len(response.Blocks))
	for _, b := range response.Blocks {
		if b == nil {
			continue
		}
		blocks = append(blocks, b.toFeed())
	}
	return blocks, nil
}

// LatestTransactions returns the most recent transactions across chains, newest
// first.
func (c *Client) LatestTransactions(ctx context.Context) ([]*feed.Transaction, error) {
	var response struct {
		Transactions []*Tx `json:"transactions"`
	}
	err := c.get(ctx, "/v1/transactions", endpointTransactions, &response)
	if err != nil {
		return nil, err
	}

	txs := make([]*feed.Transaction, 0, len(response.Transactions))
	for _, tx := range response.Transactions {
		if tx == nil {
			continue
		}
		txs = append(txs, tx.toFeed())
	}
	return txs, nil
}

func (c *Client) LatestBlockRecords(ctx context.Context) ([]feed.Record, error) {
	blocks, err := c.LatestBlocks(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Records(blocks), nil
}

func (c *Client) LatestTransactionRecords(ctx context.Context) ([]feed.Record, error) {
	txs, err := c.LatestTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Records(txs), nil
}

// GetChain returns the display metadata of chainID. It returns ErrNotFound if the
// explorer responds with 404.
func (c *Client) GetChain(ctx context.Context, chainID string) (*feed.ChainInfo, error) {
	var chain Chain
	err := c.get(ctx, "/v1/chains/"+url.PathEscape(chainID), endpointChain, &chain)
	if err != nil {
		return nil, err
	}
	return chain.toFeed(chainID), nil
}

// ListChains returns the metadata of every chain the explorer knows.
func (c *Client) ListChains(ctx context.Context) ([]*feed.ChainInfo, error) {
	var response struct {
		Chains []*Chain `json:"chains"`
	}
	err := c.get(ctx, "/v1/chains", endpointChains, &response)
	if err != nil {
		return nil, err
	}

	chains := make([]*feed.ChainInfo, 0, len(response.Chains))
	for chain := range slices.Values(response.Chains) {
		if chain == nil || chain.ChainID == "" {
			continue
		}
		chains = append(chains, chain.toFeed(chain.ChainID))
	}
	return chains, nil
}

func (c *Client) get(ctx context.Context, path, endpoint string, out any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return fmt.Errorf("create new http request: %w", err)
	}

	start := time.Now()
	resp, err := c.doRequestWithRetry(req, endpoint)
	if err != nil {
		requests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("do request with retry: %w", err)
	}
	defer resp.Body.Close()
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	requests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusNotFound && endpoint == endpointChain:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"response": string(body),
		}).Debug("Glacier responded with unexpected status code")
		return fmt.Errorf("received unexpected status: %s", resp.Status)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("could not make new request with context: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	return req, nil
}

func (c *Client) doRequestWithRetry(req *http.Request, endpoint string) (*http.Response, error) {
	bk := backoff.WithContext(newExponentialBackoffConfig(), req.Context())
	resp, err := backoff.RetryWithData[*http.Response](func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, backoff.Permanent(fmt.Errorf("could not make http call: %w", err))
			}
			c.logger.WithField("endpoint", endpoint).WithError(err).Warn("Failed to make http request, retrying...")
			return nil, fmt.Errorf("http request failed: %w", err)
		}
		return resp, nil
	}, bk)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func newExponentialBackoffConfig() *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(time.Second*3),
		backoff.WithMaxInterval(time.Second),
		backoff.WithInitialInterval(time.Millisecond*100),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.2),
	)
}
