// Package raydiumtools implements the Raydium trading tools: swapping SOL
// for a token on the Solana blockchain using the agent wallet.
package raydiumtools

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/effective-security/xlog"
	"github.com/nash-app/nash-tools/nashapi"
	"github.com/nash-app/nash-tools/pkg/envcfg"
	"github.com/nash-app/nash-tools/raydium"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
	"github.com/nash-app/nash-tools/wallet"
	"github.com/shopspring/decimal"
)

var logger = xlog.NewPackageLogger("github.com/nash-app/nash-tools", "raydiumtools")

const SwapBuyToolName = "raydium_swap_buy_tool"

// maxSwapSOL caps a single buy; fat-fingered amounts should fail
// validation rather than drain the wallet.
var maxSwapSOL = decimal.NewFromInt(10000)

// SwapBuyRequest is the tool input.
type SwapBuyRequest struct {
	TokenAddress string          `json:"token_address" jsonschema:"title=Token Address,description=Solana address of the token to buy" validate:"required,base58,min=32,max=44"`
	Amount       decimal.Decimal `json:"amount" jsonschema:"title=Amount,description=Amount of SOL to spend,type=number"`
	SlippageBps  int             `json:"slippage_bps" jsonschema:"title=Slippage Bps,description=Allowed slippage in basis points (100 = 1%)" validate:"required,gt=0,lte=1000"`
}

// SwapBuyResult reports the executed swap.
type SwapBuyResult struct {
	Message string
}

func (r *SwapBuyResult) String() string {
	return r.Message
}

// SwapBuyTool swaps SOL for a token on Raydium using the agent wallet.
type SwapBuyTool struct {
	name        string
	description string

	baseURL    string
	apiBaseURL string
	httpClient *http.Client
	rpc        raydium.SolanaRPC
}

var _ tools.Tool[SwapBuyRequest, SwapBuyResult] = (*SwapBuyTool)(nil)

func NewSwapBuy() *SwapBuyTool {
	return &SwapBuyTool{
		name: SwapBuyToolName,
		description: "Swaps a given amount of SOL for a given token on Raydium using the wallet " +
			"associated with the agent. Amount is denominated in SOL and must be between 0 and " +
			"10000. Slippage is in basis points where 100 = 1%. Returns 'Swap successful' when " +
			"the transaction lands.",
	}
}

func (t *SwapBuyTool) WithBaseURL(baseURL string) *SwapBuyTool {
	t.baseURL = baseURL
	return t
}

// WithAPIBaseURL overrides the Nash API host used for notifications.
func (t *SwapBuyTool) WithAPIBaseURL(baseURL string) *SwapBuyTool {
	t.apiBaseURL = baseURL
	return t
}

func (t *SwapBuyTool) WithHTTPClient(client *http.Client) *SwapBuyTool {
	t.httpClient = client
	return t
}

func (t *SwapBuyTool) WithSolanaRPC(rpc raydium.SolanaRPC) *SwapBuyTool {
	t.rpc = rpc
	return t
}

func (t *SwapBuyTool) Name() string {
	return t.name
}

func (t *SwapBuyTool) Description() string {
	return t.description
}

func (t *SwapBuyTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(SwapBuyRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *SwapBuyTool) Run(ctx context.Context, req *SwapBuyRequest) (*SwapBuyResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, tools.CategoryError(tools.CategoryValidation, "Amount must be greater than 0")
	}
	if req.Amount.GreaterThan(maxSwapSOL) {
		return nil, tools.CategoryError(tools.CategoryValidation, "Amount must be at most 10000 SOL")
	}
	if req.TokenAddress == raydium.WSOLMint {
		return nil, tools.CategoryError(tools.CategoryValidation, "Cannot swap SOL for wrapped SOL")
	}

	mnemonic, err := envcfg.Require(wallet.EnvMnemonic)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryConfig, err)
	}
	signer, err := wallet.KeypairFromMnemonic(mnemonic)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryConfig, err)
	}

	client := raydium.New()
	if t.baseURL != "" {
		client.WithBaseURL(t.baseURL)
	}
	if t.httpClient != nil {
		client.WithHTTPClient(t.httpClient)
	}
	if t.rpc != nil {
		client.WithSolanaRPC(t.rpc)
	}

	lamports := req.Amount.Shift(9).BigInt().Uint64()

	quote, err := client.ComputeSwapIn(ctx, req.TokenAddress, lamports, req.SlippageBps)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}

	txs, err := client.SwapTransactions(ctx, quote, signer.PublicKey().String())
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	if len(txs) == 0 {
		return nil, tools.CategoryError(tools.CategoryAPI, "Swap transaction failed: no transactions returned")
	}

	for _, tx := range txs {
		sig, err := client.SignAndSend(ctx, tx, signer)
		if err != nil {
			return nil, tools.WithCategory(tools.CategoryAPI, err)
		}
		logger.ContextKV(ctx, xlog.DEBUG, "swap_signature", sig.String())
	}

	t.notify(ctx, req)

	return &SwapBuyResult{Message: "Swap successful"}, nil
}

// notify is best effort; a swap that landed is reported as successful even
// when the notification cannot be delivered.
func (t *SwapBuyTool) notify(ctx context.Context, req *SwapBuyRequest) {
	api, err := nashapi.New()
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING, "reason", "notify_skipped", "err", err.Error())
		return
	}
	if t.apiBaseURL != "" {
		api.WithBaseURL(t.apiBaseURL)
	}
	if t.httpClient != nil {
		api.WithHTTPClient(t.httpClient)
	}
	body := fmt.Sprintf("Swapped %s SOL for %s on Raydium", req.Amount.String(), req.TokenAddress)
	if err := api.Push(ctx, "Raydium Swap", body); err != nil {
		logger.ContextKV(ctx, xlog.WARNING, "reason", "notify_failed", "err", err.Error())
	}
}

func (t *SwapBuyTool) Call(ctx context.Context, input string) (string, error) {
	var req SwapBuyRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
