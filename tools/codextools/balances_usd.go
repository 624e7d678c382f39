package codextools

import (
	"context"
	"net/http"
	"reflect"

	"github.com/nash-app/nash-tools/codex"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/pkg/envcfg"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
	"github.com/nash-app/nash-tools/wallet"
)

const BalancesUSDToolName = "balances_with_usd_value_tool"

// BalancesUSDRequest is the tool input.
type BalancesUSDRequest struct {
	WalletAddress string `json:"wallet_address,omitempty" jsonschema:"title=Wallet Address,description=Solana wallet to fetch balances for. Leave empty to use the wallet associated with the agent." validate:"omitempty,min=32,max=44"`
}

// BalancesUSDResult holds balances joined with USD prices.
type BalancesUSDResult struct {
	Items  []codex.BalanceItem
	Prices map[string]float64
}

func (r *BalancesUSDResult) String() string {
	tb := csvfmt.New("walletId", "tokenId", "balance", "shiftedBalance", "usdValue")
	for _, item := range r.Items {
		shifted, _ := item.ShiftedBalance.Float64()
		usdValue := shifted * r.Prices[codex.StripNetworkID(item.TokenID)]
		tb.AddRow(
			codex.StripNetworkID(item.WalletID),
			codex.StripNetworkID(item.TokenID),
			item.Balance,
			item.ShiftedBalance,
			usdValue,
		)
	}
	return tb.RenderOr(NoBalancesSentinel)
}

// BalancesUSDTool returns wallet balances with their USD value as CSV.
type BalancesUSDTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[BalancesUSDRequest, BalancesUSDResult] = (*BalancesUSDTool)(nil)

func NewBalancesUSD() *BalancesUSDTool {
	return &BalancesUSDTool{
		name: BalancesUSDToolName,
		description: "Returns the balances of a given wallet on the Solana blockchain in CSV format, " +
			"including the USD value of each balance. If no wallet is provided, it will return the " +
			"balances of the wallet associated with the agent. If there are no balances, it will " +
			"return 'No balances for this address' which you can assume means the wallet has no " +
			"balances for any tokens and you can move on.",
	}
}

func (t *BalancesUSDTool) WithBaseURL(baseURL string) *BalancesUSDTool {
	t.baseURL = baseURL
	return t
}

func (t *BalancesUSDTool) WithHTTPClient(client *http.Client) *BalancesUSDTool {
	t.httpClient = client
	return t
}

func (t *BalancesUSDTool) Name() string {
	return t.name
}

func (t *BalancesUSDTool) Description() string {
	return t.description
}

func (t *BalancesUSDTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(BalancesUSDRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *BalancesUSDTool) Run(ctx context.Context, req *BalancesUSDRequest) (*BalancesUSDResult, error) {
	walletAddr := req.WalletAddress
	if walletAddr == "" {
		mnemonic, err := envcfg.Require(wallet.EnvMnemonic)
		if err != nil {
			return nil, tools.WithCategory(tools.CategoryConfig, err)
		}
		walletAddr, err = wallet.AddressFromMnemonic(mnemonic)
		if err != nil {
			return nil, tools.WithCategory(tools.CategoryConfig, err)
		}
	}

	api, err := newAPIClient(t.baseURL, t.httpClient)
	if err != nil {
		return nil, err
	}
	client := codex.NewClient(api)

	items, err := client.Balances(ctx, walletAddr)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}

	prices := map[string]float64{}
	if len(items) > 0 {
		tokenIDs := make([]string, len(items))
		for i, item := range items {
			tokenIDs[i] = item.TokenID
		}
		prices, err = client.TokenPrices(ctx, tokenIDs)
		if err != nil {
			return nil, tools.WithCategory(tools.CategoryAPI, err)
		}
	}

	return &BalancesUSDResult{Items: items, Prices: prices}, nil
}

func (t *BalancesUSDTool) Call(ctx context.Context, input string) (string, error) {
	var req BalancesUSDRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
