package web

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/advisor"
	"github.com/papertrade/papertrade/internal/broker"
	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/feed"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/services"
)

type alwaysFill struct{}

func (alwaysFill) Float64() float64 { return 0 }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	c, err := catalog.New(catalog.DefaultInstruments())
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(21))
	f := feed.New(c, rnd, zap.NewNop())
	book := ledger.New(nil, zap.NewNop())
	book.Restore(services.DemoTrades(time.Now()))

	b, err := broker.New(c, services.DemoPortfolio(), book, alwaysFill{}, zap.NewNop())
	require.NoError(t, err)
	adv, err := advisor.New(c, rnd, zap.NewNop())
	require.NoError(t, err)
	opt, err := advisor.NewOptimizer(c, rnd, zap.NewNop())
	require.NoError(t, err)

	desk, err := services.NewDesk(c, f, b, book, adv, opt, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer("", desk, zap.NewNop()).mux())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHandleQuotes(t *testing.T) {
	srv := newTestServer(t)

	var quotes []quoteDTO
	resp := getJSON(t, srv, "/api/quotes", &quotes)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, quotes, 8)
	assert.Equal(t, "RELIANCE", quotes[0].Symbol)
	assert.Greater(t, quotes[0].Price, 0.0)
}

func TestHandleQuote_Single(t *testing.T) {
	srv := newTestServer(t)

	var quote quoteDTO
	resp := getJSON(t, srv, "/api/quotes/TCS", &quote)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "TCS", quote.Symbol)
	assert.Equal(t, "Tata Consultancy Services", quote.Name)
}

func TestHandleQuote_AbsentSymbolIsNull(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/quotes/ZZZZ")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Nil(t, body)
}

func TestHandlePortfolio(t *testing.T) {
	srv := newTestServer(t)

	var p portfolioDTO
	resp := getJSON(t, srv, "/api/portfolio", &p)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 25000.0, p.Balance)
	assert.Len(t, p.Holdings, 5)
	assert.Greater(t, p.TotalValue, p.Balance)
}

func TestHandlePlaceOrder(t *testing.T) {
	srv := newTestServer(t)

	body := `{"symbol":"SBIN","side":"BUY","quantity":2}`
	resp, err := http.Post(srv.URL+"/api/orders", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var trade tradeDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trade))
	assert.Equal(t, "SBIN", trade.Symbol)
	assert.Equal(t, "EXECUTED", trade.Status)
	assert.NotEmpty(t, trade.ID)
}

func TestHandlePlaceOrder_ErrorStatuses(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"unknown instrument", `{"symbol":"ZZZZ","side":"BUY","quantity":1}`, http.StatusNotFound},
		{"zero quantity", `{"symbol":"TCS","side":"BUY","quantity":0}`, http.StatusBadRequest},
		{"unknown side", `{"symbol":"TCS","side":"SHORT","quantity":1}`, http.StatusBadRequest},
		{"oversell", `{"symbol":"TCS","side":"SELL","quantity":500}`, http.StatusConflict},
		{"malformed json", `{`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/orders", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestHandleTrades(t *testing.T) {
	srv := newTestServer(t)

	var trades []tradeDTO
	resp := getJSON(t, srv, "/api/trades", &trades)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, trades, 3)
	assert.Equal(t, "RELIANCE", trades[0].Symbol, "most recent demo trade first")
}

func TestHandleAdvice(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/advice", "application/json",
		strings.NewReader(`{"riskLevel":"Medium","budget":10000}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var advice struct {
		Action     string `json:"action"`
		Symbol     string `json:"symbol"`
		Confidence int    `json:"confidence"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&advice))
	assert.Contains(t, []string{"BUY", "SELL", "HOLD"}, advice.Action)
	assert.NotEmpty(t, advice.Symbol)

	resp, err = http.Post(srv.URL+"/api/advice", "application/json",
		strings.NewReader(`{"riskLevel":"Reckless"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRebalance(t *testing.T) {
	srv := newTestServer(t)

	var plan struct {
		Suggestions []struct {
			Action   string `json:"action"`
			Priority int    `json:"priority"`
		} `json:"suggestions"`
	}
	resp := getJSON(t, srv, "/api/rebalance", &plan)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, plan.Suggestions)
	assert.LessOrEqual(t, len(plan.Suggestions), 3)
}

func TestHandleAnalysis_ShortHistory(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/analysis/TCS")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleSentiment(t *testing.T) {
	srv := newTestServer(t)

	var report struct {
		Symbol  string `json:"symbol"`
		Overall string `json:"overall"`
	}
	resp := getJSON(t, srv, "/api/sentiment/INFY", &report)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "INFY", report.Symbol)
	assert.Contains(t, []string{"POSITIVE", "NEGATIVE", "NEUTRAL"}, report.Overall)
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
