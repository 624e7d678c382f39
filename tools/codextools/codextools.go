// Package codextools implements the Solana market-data tools backed by
// the Codex (Defined.fi) API: wallet balances, trending tokens, and
// candlestick chart data.
package codextools

import (
	"net/http"

	"github.com/nash-app/nash-tools/nashapi"
	"github.com/nash-app/nash-tools/tools"
)

func newAPIClient(baseURL string, httpClient *http.Client) (*nashapi.Client, error) {
	api, err := nashapi.New()
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryConfig, err)
	}
	if baseURL != "" {
		api.WithBaseURL(baseURL)
	}
	if httpClient != nil {
		api.WithHTTPClient(httpClient)
	}
	return api, nil
}
