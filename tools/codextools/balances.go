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

const BalancesToolName = "balances_tool"

// NoBalancesSentinel is returned when the wallet holds nothing.
const NoBalancesSentinel = "No balances for this address"

// BalancesRequest is the tool input.
type BalancesRequest struct {
	WalletAddress string `json:"wallet_address,omitempty" jsonschema:"title=Wallet Address,description=Solana wallet to fetch balances for. Leave empty to use the wallet associated with the agent." validate:"omitempty,min=32,max=44"`
}

// BalancesResult holds the fetched balances.
type BalancesResult struct {
	Items []codex.BalanceItem
}

func (r *BalancesResult) String() string {
	tb := csvfmt.New("walletId", "tokenId", "balance", "shiftedBalance")
	for _, item := range r.Items {
		tb.AddRow(
			codex.StripNetworkID(item.WalletID),
			codex.StripNetworkID(item.TokenID),
			item.Balance,
			item.ShiftedBalance,
		)
	}
	return tb.RenderOr(NoBalancesSentinel)
}

// BalancesTool returns the token balances of a Solana wallet as CSV.
type BalancesTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[BalancesRequest, BalancesResult] = (*BalancesTool)(nil)

func NewBalances() *BalancesTool {
	return &BalancesTool{
		name: BalancesToolName,
		description: "Returns the balances of a given wallet on the Solana blockchain in CSV format. " +
			"If no wallet is provided, it will return the balances of the wallet associated with the agent. " +
			"If there are no balances, it will return 'No balances for this address' which you can assume " +
			"means the wallet has no balances for any tokens and you can move on.",
	}
}

func (t *BalancesTool) WithBaseURL(baseURL string) *BalancesTool {
	t.baseURL = baseURL
	return t
}

func (t *BalancesTool) WithHTTPClient(client *http.Client) *BalancesTool {
	t.httpClient = client
	return t
}

func (t *BalancesTool) Name() string {
	return t.name
}

func (t *BalancesTool) Description() string {
	return t.description
}

func (t *BalancesTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(BalancesRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *BalancesTool) Run(ctx context.Context, req *BalancesRequest) (*BalancesResult, error) {
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

	items, err := codex.NewClient(api).Balances(ctx, walletAddr)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	return &BalancesResult{Items: items}, nil
}

func (t *BalancesTool) Call(ctx context.Context, input string) (string, error) {
	var req BalancesRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
