// Package codex wraps the Codex (Defined.fi) GraphQL operations the
// market-data tools use, reached through the Nash API proxy.
package codex

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/nash-app/nash-tools/nashapi"
)

const (
	// Service is the proxy route for Codex.
	Service = "codex"

	// SolanaNetworkID is the Codex network id for the Solana mainnet.
	SolanaNetworkID = 1399811149

	// maxPages caps cursor pagination.
	maxPages = 10

	// priceChunkSize is the getTokenPrices batch limit.
	priceChunkSize = 25
)

// Client issues Codex queries through the Nash API proxy.
type Client struct {
	api *nashapi.Client
}

func NewClient(api *nashapi.Client) *Client {
	return &Client{api: api}
}

// StripNetworkID removes the ":<networkId>" suffix Codex appends to
// wallet and token identifiers.
func StripNetworkID(s string) string {
	return strings.ReplaceAll(s, ":"+strconv.Itoa(SolanaNetworkID), "")
}

// BalanceItem is one token balance of a wallet.
type BalanceItem struct {
	WalletID       string      `json:"walletId"`
	TokenID        string      `json:"tokenId"`
	Balance        string      `json:"balance"`
	ShiftedBalance json.Number `json:"shiftedBalance"`
}

// Balances fetches all token balances of a Solana wallet, following the
// cursor up to 10 pages.
func (c *Client) Balances(ctx context.Context, wallet string) ([]BalanceItem, error) {
	cursor := "null"
	var items []BalanceItem

	for page := 0; page < maxPages; page++ {
		query := fmt.Sprintf(`
			query {
				balances(input: { walletId: "%s:%d", cursor: %s }) {
					cursor
					items {
						walletId
						tokenId
						balance
						shiftedBalance
					}
				}
			}`, wallet, SolanaNetworkID, cursor)

		var out struct {
			Balances struct {
				Cursor string        `json:"cursor"`
				Items  []BalanceItem `json:"items"`
			} `json:"balances"`
		}
		if err := c.api.GraphQL(ctx, Service, query, &out); err != nil {
			return nil, err
		}

		if len(out.Balances.Items) == 0 {
			break
		}
		items = append(items, out.Balances.Items...)

		if out.Balances.Cursor == "" {
			break
		}
		cursor = strconv.Quote(out.Balances.Cursor)
	}

	return items, nil
}

// TokenPrices fetches USD prices for token ids ("address" or
// "address:networkId" form), batched per the API limit. The result maps
// token address to price; tokens the API has no price for are absent.
func (c *Client) TokenPrices(ctx context.Context, tokenIDs []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(tokenIDs))

	for start := 0; start < len(tokenIDs); start += priceChunkSize {
		end := min(start+priceChunkSize, len(tokenIDs))

		var inputs []string
		for _, id := range tokenIDs[start:end] {
			address, _, _ := strings.Cut(id, ":")
			inputs = append(inputs, fmt.Sprintf(`{ address: "%s", networkId: %d }`, address, SolanaNetworkID))
		}

		query := fmt.Sprintf(`
			query {
				getTokenPrices(
					inputs: [
						%s
					]
				) {
					address
					networkId
					priceUsd
				}
			}`, strings.Join(inputs, "\n\t\t\t\t\t\t"))

		var out struct {
			GetTokenPrices []*struct {
				Address  string  `json:"address"`
				PriceUSD float64 `json:"priceUsd"`
			} `json:"getTokenPrices"`
		}
		if err := c.api.GraphQL(ctx, Service, query, &out); err != nil {
			return nil, err
		}

		for _, p := range out.GetTokenPrices {
			if p != nil {
				prices[p.Address] = p.PriceUSD
			}
		}
	}

	return prices, nil
}

// TopToken is one entry of the trending token list.
type TopToken struct {
	Name          string   `json:"name"`
	Symbol        string   `json:"symbol"`
	Address       string   `json:"address"`
	CreatedAt     int64    `json:"createdAt"`
	Volume        string   `json:"volume"`
	Liquidity     string   `json:"liquidity"`
	MarketCap     *string  `json:"marketCap"`
	Price         float64  `json:"price"`
	PriceChange1  *float64 `json:"priceChange1"`
	PriceChange4  *float64 `json:"priceChange4"`
	PriceChange12 *float64 `json:"priceChange12"`
	PriceChange24 *float64 `json:"priceChange24"`
	UniqueBuys1   int64    `json:"uniqueBuys1"`
	UniqueBuys4   int64    `json:"uniqueBuys4"`
	UniqueBuys12  int64    `json:"uniqueBuys12"`
	UniqueBuys24  int64    `json:"uniqueBuys24"`
	UniqueSells1  int64    `json:"uniqueSells1"`
	UniqueSells4  int64    `json:"uniqueSells4"`
	UniqueSells12 int64    `json:"uniqueSells12"`
	UniqueSells24 int64    `json:"uniqueSells24"`
	TxnCount1     int64    `json:"txnCount1"`
	TxnCount4     int64    `json:"txnCount4"`
	TxnCount12    int64    `json:"txnCount12"`
	TxnCount24    int64    `json:"txnCount24"`
	IsScam        *bool    `json:"isScam"`
}

// TopTokens fetches the top 50 trending Solana tokens over the given
// resolution ("1", "5", "15", "30", "60", "240", "720", or "1D").
func (c *Client) TopTokens(ctx context.Context, resolution string) ([]TopToken, error) {
	query := fmt.Sprintf(`
		query {
			listTopTokens(networkFilter: [%d], limit: 50, resolution: "%s") {
				name
				symbol
				address
				createdAt
				volume
				liquidity
				marketCap
				price
				priceChange1
				priceChange4
				priceChange12
				priceChange24
				uniqueBuys1
				uniqueBuys4
				uniqueBuys12
				uniqueBuys24
				uniqueSells1
				uniqueSells4
				uniqueSells12
				uniqueSells24
				txnCount1
				txnCount4
				txnCount12
				txnCount24
				isScam
			}
		}`, SolanaNetworkID, resolution)

	var out struct {
		ListTopTokens []TopToken `json:"listTopTokens"`
	}
	if err := c.api.GraphQL(ctx, Service, query, &out); err != nil {
		return nil, err
	}
	return out.ListTopTokens, nil
}

// Bars fetches 5-minute candle data for a token over [from, to].
func (c *Client) Bars(ctx context.Context, tokenAddress string, from, to int64) (*BarSeries, error) {
	query := fmt.Sprintf(`
		query {
			getBars(
				symbol: "%s:%d"
				from: %d
				to: %d
				resolution: "5"
				quoteToken: token1
			) {
				o
				h
				l
				c
				v
				t
				volume
				sellers
				sells
				sellVolume
				buyers
				buys
				buyVolume
				traders
				transactions
			}
		}`, tokenAddress, SolanaNetworkID, from, to)

	var out struct {
		GetBars json.RawMessage `json:"getBars"`
	}
	if err := c.api.GraphQL(ctx, Service, query, &out); err != nil {
		return nil, err
	}
	// A token with no candles in the window comes back as a null getBars.
	if string(out.GetBars) == "null" {
		return nil, nil
	}
	if len(out.GetBars) == 0 {
		return nil, errors.New("Invalid API response format: missing getBars")
	}
	return newBarSeries(out.GetBars), nil
}
