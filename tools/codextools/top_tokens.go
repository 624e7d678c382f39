package codextools

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/nash-app/nash-tools/codex"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const TopTokensToolName = "top_tokens_tool"

// NoTokensSentinel is returned when the trending list is empty.
const NoTokensSentinel = "No tokens found"

// TopTokensRequest is the tool input.
type TopTokensRequest struct {
	Resolution string `json:"resolution" jsonschema:"title=Resolution,description=Resolution for time window to look for trending tokens,enum=1,enum=5,enum=15,enum=30,enum=60,enum=240,enum=720,enum=1D" validate:"required,oneof=1 5 15 30 60 240 720 1D"`
}

// TopTokensResult holds the trending token list.
type TopTokensResult struct {
	Tokens []codex.TopToken
}

func (r *TopTokensResult) String() string {
	tb := csvfmt.New(
		"name", "symbol", "address", "volume", "liquidity", "marketCap", "price",
		"priceChange1", "priceChange4", "priceChange12", "priceChange24",
		"uniqueBuys1", "uniqueBuys4", "uniqueBuys12", "uniqueBuys24",
		"uniqueSells1", "uniqueSells4", "uniqueSells12", "uniqueSells24",
		"txnCount1", "txnCount4", "txnCount12", "txnCount24",
		"ageInMinutes",
	)
	for _, tok := range r.Tokens {
		ageInMinutes := (time.Now().Unix() - tok.CreatedAt) / 60
		tb.AddRow(
			tok.Name, tok.Symbol, tok.Address, tok.Volume, tok.Liquidity, tok.MarketCap, tok.Price,
			tok.PriceChange1, tok.PriceChange4, tok.PriceChange12, tok.PriceChange24,
			tok.UniqueBuys1, tok.UniqueBuys4, tok.UniqueBuys12, tok.UniqueBuys24,
			tok.UniqueSells1, tok.UniqueSells4, tok.UniqueSells12, tok.UniqueSells24,
			tok.TxnCount1, tok.TxnCount4, tok.TxnCount12, tok.TxnCount24,
			ageInMinutes,
		)
	}
	return tb.RenderOr(NoTokensSentinel)
}

// TopTokensTool returns the top trending Solana tokens as CSV.
type TopTokensTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[TopTokensRequest, TopTokensResult] = (*TopTokensTool)(nil)

func NewTopTokens() *TopTokensTool {
	return &TopTokensTool{
		name: TopTokensToolName,
		description: "Returns a CSV of the top trending tokens on the Solana blockchain over a given " +
			"resolution. Resolution can be '1', '5', '15', '30', '60', '240', '720', or '1D' " +
			"where '1' is 1 minute, '5' is 5 minutes, '15' is 15 minutes, '30' is 30 minutes, " +
			"'60' is 1 hour, '240' is 4 hours, '720' is 12 hours, and '1D' is 1 day. If there are " +
			"no tokens found, it will return 'No tokens found'.",
	}
}

func (t *TopTokensTool) WithBaseURL(baseURL string) *TopTokensTool {
	t.baseURL = baseURL
	return t
}

func (t *TopTokensTool) WithHTTPClient(client *http.Client) *TopTokensTool {
	t.httpClient = client
	return t
}

func (t *TopTokensTool) Name() string {
	return t.name
}

func (t *TopTokensTool) Description() string {
	return t.description
}

func (t *TopTokensTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(TopTokensRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *TopTokensTool) Run(ctx context.Context, req *TopTokensRequest) (*TopTokensResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}

	api, err := newAPIClient(t.baseURL, t.httpClient)
	if err != nil {
		return nil, err
	}

	toks, err := codex.NewClient(api).TopTokens(ctx, req.Resolution)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	return &TopTokensResult{Tokens: toks}, nil
}

func (t *TopTokensTool) Call(ctx context.Context, input string) (string, error) {
	var req TopTokensRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
