package glacier

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hedisam/chainfeed/internal/feed"
)

// Block is a block as listed by the explorer.
type Block struct {
	Hash string `json:"blockHash"`
	// Number is sent as a decimal string.
	Number int64 `json:"blockNumber"`
	// Timestamp is in seconds since epoch.
	Timestamp int64  `json:"blockTimestamp"`
	ChainID   string `json:"chainId"`
	TxCount   int    `json:"txCount"`
	FeesSpent string `json:"feesSpent"`
}

// UnmarshalJSON customizes Block decoding to parse the decimal block number.
func (b *Block) UnmarshalJSON(data []byte) error {
	// alias to avoid infinite recursion
	type blockAlias Block
	aux := &struct {
		*blockAlias
		Number json.Number `json:"blockNumber"`
	}{
		blockAlias: (*blockAlias)(b),
	}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return fmt.Errorf("error unmarshalling Block: %w", err)
	}

	if aux.Number == "" {
		return nil
	}
	blockNum, err := strconv.ParseInt(aux.Number.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid block number %q: %w", aux.Number, err)
	}
	b.Number = blockNum

	return nil
}

func (b *Block) toFeed() *feed.Block {
	return &feed.Block{
		Hash:      b.Hash,
		Timestamp: b.Timestamp * 1000,
		Height:    b.Number,
		ChainID:   b.ChainID,
		TxCount:   b.TxCount,
		FeesSpent: b.FeesSpent,
	}
}

// Tx is a transaction as listed by the explorer.
type Tx struct {
	Hash string
	// Timestamp is in seconds since epoch.
	Timestamp int64
	From      string
	To        string
	Value     string
	ChainID   string
}

// UnmarshalJSON flattens the from and to address objects. A missing recipient
// leaves To empty.
func (t *Tx) UnmarshalJSON(data []byte) error {
	type address struct {
		Address string `json:"address"`
	}
	var aux struct {
		Hash      string   `json:"txHash"`
		Timestamp int64    `json:"blockTimestamp"`
		From      *address `json:"from"`
		To        *address `json:"to"`
		Value     string   `json:"value"`
		ChainID   string   `json:"chainId"`
	}
	err := json.Unmarshal(data, &aux)
	if err != nil {
		return fmt.Errorf("unmarshal into aux tx: %w", err)
	}

	t.Hash = aux.Hash
	t.Timestamp = aux.Timestamp
	t.Value = aux.Value
	t.ChainID = aux.ChainID
	if aux.From != nil {
		t.From = aux.From.Address
	}
	if aux.To != nil {
		t.To = aux.To.Address
	}

	return nil
}

func (t *Tx) toFeed() *feed.Transaction {
	return &feed.Transaction{
		Hash:      t.Hash,
		Timestamp: t.Timestamp * 1000,
		From:      t.From,
		To:        t.To,
		Value:     t.Value,
		ChainID:   t.ChainID,
	}
}

// Chain is the chain metadata returned by the explorer.
type Chain struct {
	ChainID      string `json:"chainId"`
	Name         string `json:"chainName"`
	LogoURI      string `json:"chainLogoUri"`
	NetworkToken Token  `json:"networkToken"`
}

type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// toFeed converts c, falling back to chainID when the payload omits its own id.
func (c *Chain) toFeed(chainID string) *feed.ChainInfo {
	if c.ChainID != "" {
		chainID = c.ChainID
	}
	return &feed.ChainInfo{
		ChainID: chainID,
		Name:    c.Name,
		LogoURI: c.LogoURI,
		NativeToken: feed.Token{
			Name:     c.NetworkToken.Name,
			Symbol:   c.NetworkToken.Symbol,
			Decimals: c.NetworkToken.Decimals,
		},
	}
}
