// Package nashapi implements the HTTP client for the Nash API proxy.
// Tools never talk to third-party APIs with their own credentials; the
// proxy injects them and meters usage per project key.
package nashapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/nash-app/nash-tools/pkg/envcfg"
	"github.com/tidwall/gjson"
)

var logger = xlog.NewPackageLogger("github.com/nash-app/nash-tools", "nashapi")

const (
	// DefaultBaseURL is the Nash API proxy host.
	DefaultBaseURL = "https://api.nash.run"

	// EnvAPIKey names the project secret that authenticates proxy calls.
	EnvAPIKey = "NASH_PROJECT_API_KEY"
)

// Client calls the Nash API proxy with the project API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client authenticated with the NASH_PROJECT_API_KEY
// environment variable.
func New() (*Client, error) {
	apiKey, err := envcfg.Require(EnvAPIKey)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}, nil
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// GraphQL posts a GraphQL query to a proxied service (e.g. "codex") and
// unmarshals the "data" envelope into out. A response carrying "errors"
// fails even on HTTP 200.
func (c *Client) GraphQL(ctx context.Context, service, query string, out any) error {
	body, err := c.do(ctx, http.MethodPost, "/proxy/"+service, nil, map[string]string{"query": query})
	if err != nil {
		return err
	}

	if errs := gjson.GetBytes(body, "errors"); errs.Exists() {
		return errors.Newf("GraphQL Error: %s", errs.Raw)
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return errors.New("Invalid API response format: missing data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return errors.WithMessage(err, "Invalid API response format")
	}
	return nil
}

// GetJSON performs a GET against the proxy and unmarshals the response.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WithMessage(err, "Invalid API response format")
	}
	return nil
}

// PostJSON performs a POST against the proxy and unmarshals the response.
func (c *Client) PostJSON(ctx context.Context, path string, reqBody any, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, reqBody)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WithMessage(err, "Invalid API response format")
	}
	return nil
}

// Notify sends a notification through the proxy. Tools treat this as
// best-effort; callers decide whether a failure matters.
func (c *Client) Notify(ctx context.Context, title, body string) error {
	err := c.PostJSON(ctx, "/proxy/notifications", map[string]string{
		"title": title,
		"body":  body,
	}, nil)
	return errors.WithMessage(err, "Failed to send notification")
}

// Push delivers a push notification to the project owner's devices. Unlike
// the proxied routes, this endpoint lives on the API host itself.
func (c *Client) Push(ctx context.Context, title, body string) error {
	err := c.PostJSON(ctx, "/notifications/push", map[string]string{
		"title": title,
		"body":  body,
	}, nil)
	return errors.WithMessage(err, "Failed to send notification")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqBody any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if reqBody != nil {
		bs, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to marshal request")
		}
		rdr = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "API request failed: %s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read response")
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("API request failed: %s %s returned status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
