package codex_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nash-app/nash-tools/codex"
	"github.com/nash-app/nash-tools/nashapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *codex.Client {
	t.Helper()
	t.Setenv(nashapi.EnvAPIKey, "testkey")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := nashapi.New()
	require.NoError(t, err)
	api.WithBaseURL(server.URL).WithHTTPClient(server.Client())
	return codex.NewClient(api)
}

func readQuery(t *testing.T, r *http.Request) string {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var req struct {
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(body, &req))
	return req.Query
}

func TestBalancesPagination(t *testing.T) {
	page := 0
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proxy/codex", r.URL.Path)
		query := readQuery(t, r)
		assert.Contains(t, query, `walletId: "wallet1:1399811149"`)

		page++
		switch page {
		case 1:
			assert.Contains(t, query, "cursor: null")
			_, _ = w.Write([]byte(`{"data":{"balances":{"cursor":"abc","items":[
				{"walletId":"wallet1:1399811149","tokenId":"tok1:1399811149","balance":"1000","shiftedBalance":1.0}
			]}}}`))
		case 2:
			assert.Contains(t, query, `cursor: "abc"`)
			_, _ = w.Write([]byte(`{"data":{"balances":{"cursor":null,"items":[
				{"walletId":"wallet1:1399811149","tokenId":"tok2:1399811149","balance":"5","shiftedBalance":0.000005}
			]}}}`))
		default:
			t.Fatal("unexpected extra page")
		}
	})

	items, err := client.Balances(context.Background(), "wallet1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "tok1:1399811149", items[0].TokenID)
	assert.Equal(t, "0.000005", items[1].ShiftedBalance.String())
	assert.Equal(t, 2, page)
}

func TestBalancesEmpty(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"balances":{"cursor":null,"items":[]}}}`))
	})

	items, err := client.Balances(context.Background(), "wallet1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTokenPricesChunking(t *testing.T) {
	var batches []int
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := readQuery(t, r)
		batches = append(batches, strings.Count(query, "address:"))
		_, _ = w.Write([]byte(`{"data":{"getTokenPrices":[
			{"address":"tok0","networkId":1399811149,"priceUsd":1.5},
			null
		]}}`))
	})

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = "tok" + string(rune('a'+i%26)) + ":1399811149"
	}
	prices, err := client.TokenPrices(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, []int{25, 5}, batches)
	assert.InDelta(t, 1.5, prices["tok0"], 0.0001)
}

func TestTopTokens(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := readQuery(t, r)
		assert.Contains(t, query, "listTopTokens(networkFilter: [1399811149], limit: 50, resolution: \"60\")")
		_, _ = w.Write([]byte(`{"data":{"listTopTokens":[
			{"name":"Token A","symbol":"TKA","address":"addrA","createdAt":1700000000,
			 "volume":"12345.6","liquidity":"999","marketCap":null,"price":0.5,
			 "priceChange1":0.1,"priceChange4":null,"priceChange12":-0.2,"priceChange24":0.3,
			 "uniqueBuys1":1,"uniqueBuys4":2,"uniqueBuys12":3,"uniqueBuys24":4,
			 "uniqueSells1":5,"uniqueSells4":6,"uniqueSells12":7,"uniqueSells24":8,
			 "txnCount1":9,"txnCount4":10,"txnCount12":11,"txnCount24":12,"isScam":false}
		]}}`))
	})

	toks, err := client.TopTokens(context.Background(), "60")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "Token A", toks[0].Name)
	assert.Nil(t, toks[0].MarketCap)
	assert.Nil(t, toks[0].PriceChange4)
	require.NotNil(t, toks[0].PriceChange12)
	assert.InDelta(t, -0.2, *toks[0].PriceChange12, 0.0001)
}

func TestBars(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := readQuery(t, r)
		assert.Contains(t, query, `symbol: "tokA:1399811149"`)
		assert.Contains(t, query, `resolution: "5"`)
		_, _ = w.Write([]byte(`{"data":{"getBars":{
			"o":[1.0,null,3.0],"h":[1.5,2.5,3.5],"l":[0.5,1.5,2.5],"c":[1.2,2.2,3.2],
			"v":[10,20,30],"t":[100,200,300],
			"volume":["11.1","22.2","33.3"],
			"sellers":[1,2,3],"sells":[1,2,3],"sellVolume":["5","6","7"],
			"buyers":[4,5,6],"buys":[4,5,6],"buyVolume":["6","7","8"],
			"traders":[5,7,9],"transactions":[5,7,9]
		}}}`))
	})

	bars, err := client.Bars(context.Background(), "tokA", 100, 300)
	require.NoError(t, err)
	require.NotNil(t, bars)

	header := bars.Header()
	assert.Equal(t, "timestamp", header[0])
	assert.Equal(t, "transactions", header[13])

	rows := bars.Rows()
	// candle with null open is dropped
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0][0])
	assert.Equal(t, "1", rows[0][1])
	assert.Equal(t, "11.1", rows[0][5])
	assert.Equal(t, "300", rows[1][0])
}

func TestBarsNull(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"getBars":null}}`))
	})

	bars, err := client.Bars(context.Background(), "tokA", 100, 300)
	require.NoError(t, err)
	assert.Nil(t, bars)
}

func TestStripNetworkID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "tok1", codex.StripNetworkID("tok1:1399811149"))
	assert.Equal(t, "plain", codex.StripNetworkID("plain"))
}
