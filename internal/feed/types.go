// Package feed defines the records shown on the dashboard feeds.
package feed

import (
	"fmt"
	"slices"
	"strings"
)

type Kind string

const (
	KindBlock       Kind = "block"
	KindTransaction Kind = "transaction"
)

// Kinds lists every feed kind in display order.
var Kinds = []Kind{KindBlock, KindTransaction}

// ParseKind accepts the singular or plural name of a feed kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block", "blocks":
		return KindBlock, nil
	case "transaction", "transactions", "tx", "txs":
		return KindTransaction, nil
	default:
		return "", fmt.Errorf("unknown feed kind %q", s)
	}
}

// Record is a Block or a Transaction. Records are immutable once created.
type Record interface {
	// ID returns the record hash.
	ID() string
	Kind() Kind
	// Chain returns the id of the chain the record belongs to.
	Chain() string
	// UnixMilli returns the record timestamp in milliseconds since epoch.
	UnixMilli() int64
}

type Block struct {
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
	Height    int64  `json:"height"`
	ChainID   string `json:"chainId"`
	TxCount   int    `json:"txCount"`
	FeesSpent string `json:"feesSpent"`
}

func (b *Block) ID() string       { return b.Hash }
func (b *Block) Kind() Kind       { return KindBlock }
func (b *Block) Chain() string    { return b.ChainID }
func (b *Block) UnixMilli() int64 { return b.Timestamp }

type Transaction struct {
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	ChainID   string `json:"chainId"`
}

func (t *Transaction) ID() string       { return t.Hash }
func (t *Transaction) Kind() Kind       { return KindTransaction }
func (t *Transaction) Chain() string    { return t.ChainID }
func (t *Transaction) UnixMilli() int64 { return t.Timestamp }

// Records converts a slice of concrete records into a slice of Record.
func Records[T Record](items []T) []Record {
	if items == nil {
		return nil
	}
	out := make([]Record, 0, len(items))
	for item := range slices.Values(items) {
		out = append(out, item)
	}
	return out
}

// IDs returns the ids of the given records in order.
func IDs(records []Record) []string {
	ids := make([]string, 0, len(records))
	for r := range slices.Values(records) {
		ids = append(ids, r.ID())
	}
	return ids
}

// ChainInfo is the display metadata of a chain.
type ChainInfo struct {
	ChainID     string `json:"chainId"`
	Name        string `json:"chainName"`
	LogoURI     string `json:"chainLogoUri"`
	NativeToken Token  `json:"nativeToken"`
}

type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

const (
	PlaceholderChainName = "Chain"
	PlaceholderLogoURI   = "/globe.svg"
	PlaceholderSymbol    = "UNKNOWN"
	DefaultDecimals      = 18
)

// PlaceholderChain returns the metadata shown while the real one is unknown.
func PlaceholderChain(chainID string) *ChainInfo {
	return &ChainInfo{
		ChainID: chainID,
		Name:    PlaceholderChainName,
		LogoURI: PlaceholderLogoURI,
		NativeToken: Token{
			Symbol:   PlaceholderSymbol,
			Decimals: DefaultDecimals,
		},
	}
}
