// Package raydium wraps the Raydium trade API and the Solana RPC calls
// needed to execute a swap. Unlike the market-data services, Raydium is
// called directly rather than through the Nash API proxy.
package raydium

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the Raydium trade API host.
	DefaultBaseURL = "https://transaction-v1.raydium.io"

	// DefaultRPCURL is the Solana RPC endpoint used to send transactions.
	DefaultRPCURL = "https://api.mainnet-beta.solana.com"

	// WSOLMint is the wrapped SOL mint, the input side of every buy.
	WSOLMint = "So11111111111111111111111111111111111111112"

	// PriorityFee is the compute unit price in micro-lamports attached to
	// swap transactions.
	PriorityFee = "200000"
)

// SolanaRPC is the subset of the Solana RPC client used to execute swaps.
type SolanaRPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Client calls the Raydium trade API and the Solana RPC.
type Client struct {
	baseURL    string
	httpClient *http.Client
	rpc        SolanaRPC
}

func New() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		rpc:        rpc.New(DefaultRPCURL),
	}
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithSolanaRPC(rpcClient SolanaRPC) *Client {
	c.rpc = rpcClient
	return c
}

// ComputeSwapIn quotes a fixed-input swap from SOL to outputMint. The raw
// response is returned as-is: the trade endpoint wants the quote echoed
// back untouched.
func (c *Client) ComputeSwapIn(ctx context.Context, outputMint string, lamports uint64, slippageBps int) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/compute/swap-base-in?inputMint=%s&outputMint=%s&amount=%d&slippageBps=%d&txVersion=V0",
		c.baseURL, WSOLMint, outputMint, lamports, slippageBps)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(body, "Swap computation failed"); err != nil {
		return nil, err
	}
	return body, nil
}

// SwapTransactions builds the serialized transactions for a quoted swap.
// The returned strings are base64-encoded versioned transactions.
func (c *Client) SwapTransactions(ctx context.Context, computeData json.RawMessage, walletPubkey string) ([]string, error) {
	reqBody, err := json.Marshal(map[string]any{
		"swapResponse":                  computeData,
		"version":                       "V0",
		"txVersion":                     "V0",
		"wrapSol":                       true,
		"computeUnitPriceMicroLamports": PriorityFee,
		"wallet":                        walletPubkey,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/swap-base-in", strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(body, "Swap transaction failed"); err != nil {
		return nil, err
	}

	var txs []string
	for _, item := range gjson.GetBytes(body, "data").Array() {
		if tx := item.Get("transaction"); tx.Exists() {
			txs = append(txs, tx.String())
		}
	}
	return txs, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithMessage(err, "API request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("API request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func checkSuccess(body []byte, prefix string) error {
	if gjson.GetBytes(body, "success").Bool() {
		return nil
	}
	msg := gjson.GetBytes(body, "msg").String()
	if msg == "" {
		msg = "Unknown error"
	}
	return errors.Newf("%s: %s", prefix, msg)
}
