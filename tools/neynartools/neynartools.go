// Package neynartools implements the Farcaster social tools backed by the
// Neynar API: a user's following feed and the global trending feed.
package neynartools

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
