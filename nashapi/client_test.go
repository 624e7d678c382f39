package nashapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nash-app/nash-tools/nashapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "")
	_, err := nashapi.New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), nashapi.EnvAPIKey)

	t.Setenv(nashapi.EnvAPIKey, "testkey")
	_, err = nashapi.New()
	require.NoError(t, err)
}

func TestGraphQL(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/proxy/codex", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "testkey", r.Header.Get("X-API-KEY"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_, _ = w.Write([]byte(`{"data":{"listTopTokens":[{"name":"Token A"}]}}`))
	}))
	defer server.Close()

	client, err := nashapi.New()
	require.NoError(t, err)
	client.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	var out struct {
		ListTopTokens []struct {
			Name string `json:"name"`
		} `json:"listTopTokens"`
	}
	err = client.GraphQL(context.Background(), "codex", `query { listTopTokens { name } }`, &out)
	require.NoError(t, err)
	require.Len(t, out.ListTopTokens, 1)
	assert.Equal(t, "Token A", out.ListTopTokens[0].Name)
}

func TestGraphQLErrors(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"rate limited"}]}`))
	}))
	defer server.Close()

	client, err := nashapi.New()
	require.NoError(t, err)
	client.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	err = client.GraphQL(context.Background(), "codex", `query { x }`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GraphQL Error")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGetJSONStatusError(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("fid"))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := nashapi.New()
	require.NoError(t, err)
	client.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	q := url.Values{"fid": []string{"3"}}
	err = client.GetJSON(context.Background(), "/proxy/neynar/v2/farcaster/feed/following", q, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestNotify(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := nashapi.New()
	require.NoError(t, err)
	client.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	err = client.Notify(context.Background(), "Message Received", "Echo: hi")
	require.NoError(t, err)
	assert.Equal(t, "/proxy/notifications", gotPath)
}

func TestPush(t *testing.T) {
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := nashapi.New()
	require.NoError(t, err)
	client.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	err = client.Push(context.Background(), "Raydium Swap", "Swapped 1 SOL")
	require.NoError(t, err)
	assert.Equal(t, "/notifications/push", gotPath)
	assert.Equal(t, map[string]string{"title": "Raydium Swap", "body": "Swapped 1 SOL"}, gotBody)
}
