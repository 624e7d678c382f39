package codextools

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/nash-app/nash-tools/codex"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const ChartToolName = "chart_tool"

// NoChartDataSentinel is returned when the token has no candles in the
// window.
const NoChartDataSentinel = "No chart data"

// ChartRequest is the tool input. Duration is a string because the LLM
// supplies it as text; it must parse as a positive number of minutes.
type ChartRequest struct {
	TokenAddress string `json:"token_address" jsonschema:"title=Token Address,description=Solana token address" validate:"required,min=32,max=44"`
	Duration     string `json:"duration" jsonschema:"title=Duration,description=Duration in minutes" validate:"required"`
}

// ChartResult holds the fetched candle data.
type ChartResult struct {
	Bars *codex.BarSeries
}

func (r *ChartResult) String() string {
	if r.Bars == nil {
		return NoChartDataSentinel
	}
	rows := r.Bars.Rows()
	if len(rows) == 0 {
		return NoChartDataSentinel
	}
	tb := csvfmt.New(r.Bars.Header()...)
	for _, row := range rows {
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = v
		}
		tb.AddRow(vals...)
	}
	return tb.Render()
}

// ChartTool returns 5-minute candlestick data for a token as CSV.
type ChartTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

var _ tools.Tool[ChartRequest, ChartResult] = (*ChartTool)(nil)

func NewChart() *ChartTool {
	return &ChartTool{
		name: ChartToolName,
		description: "Returns chart data for a given token over a given duration in minutes with " +
			"resolution of 5 minutes on the Solana blockchain in CSV format.",
		now: time.Now,
	}
}

func (t *ChartTool) WithBaseURL(baseURL string) *ChartTool {
	t.baseURL = baseURL
	return t
}

func (t *ChartTool) WithHTTPClient(client *http.Client) *ChartTool {
	t.httpClient = client
	return t
}

func (t *ChartTool) Name() string {
	return t.name
}

func (t *ChartTool) Description() string {
	return t.description
}

func (t *ChartTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(ChartRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *ChartTool) Run(ctx context.Context, req *ChartRequest) (*ChartResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}
	duration, err := strconv.Atoi(req.Duration)
	if err != nil || duration <= 0 {
		return nil, tools.CategoryError(tools.CategoryValidation, "Duration must be a valid positive number in minutes")
	}

	api, err := newAPIClient(t.baseURL, t.httpClient)
	if err != nil {
		return nil, err
	}

	to := t.now().Unix()
	from := to - int64(duration)*60

	bars, err := codex.NewClient(api).Bars(ctx, req.TokenAddress, from, to)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	return &ChartResult{Bars: bars}, nil
}

func (t *ChartTool) Call(ctx context.Context, input string) (string, error) {
	var req ChartRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
