// Package web exposes the trading desk over HTTP for the dashboard UI.
package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/papertrade/papertrade/internal/broker"
	"github.com/papertrade/papertrade/internal/domain"
	"github.com/papertrade/papertrade/internal/services"
)

const (
	activityPollInterval = 2 * time.Second
	activityStreamLimit  = 20
	heartbeatInterval    = 30 * time.Second
)

// Server exposes HTTP endpoints serving a minimal HTML page, JSON APIs and an
// SSE activity stream.
type Server struct {
	Addr   string
	Desk   *services.Desk
	Logger *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, desk *services.Desk, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Desk: desk, Logger: logger}
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/quotes", s.handleQuotes)
	mux.HandleFunc("GET /api/quotes/{symbol}", s.handleQuote)
	mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	mux.HandleFunc("POST /api/orders", s.handlePlaceOrder)
	mux.HandleFunc("GET /api/trades", s.handleTrades)
	mux.HandleFunc("POST /api/advice", s.handleAdvice)
	mux.HandleFunc("GET /api/rebalance", s.handleRebalance)
	mux.HandleFunc("GET /api/analysis/{symbol}", s.handleAnalysis)
	mux.HandleFunc("GET /api/sentiment/{symbol}", s.handleSentiment)
	mux.HandleFunc("GET /activity/stream", s.handleActivityStream)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic TLS certificates via
// ACME, plus an HTTP server on port 80 for HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domains []string, cacheDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(domains) == 0 {
		return fmt.Errorf("no domains provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = "cert-cache"
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domains...),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpsServer := &http.Server{
		Addr:              ":443",
		Handler:           s.mux(),
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig:         &tls.Config{GetCertificate: manager.GetCertificate},
	}
	httpServer := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpsServer.Shutdown(shutdownCtx)
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Warn("ACME challenge server stopped", zap.Error(err))
		}
	}()

	if err := httpsServer.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.Desk.ListQuotes(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]quoteDTO, len(quotes))
	for i, q := range quotes {
		out[i] = newQuoteDTO(q)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.Desk.GetQuote(r.Context(), r.PathValue("symbol"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if quote == nil {
		// absence is a valid null result, not an error
		s.writeJSON(w, http.StatusOK, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, newQuoteDTO(*quote))
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.Desk.GetPortfolio(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newPortfolioDTO(portfolio))
}

type orderRequest struct {
	Symbol   string   `json:"symbol"`
	Side     string   `json:"side"`
	Quantity int64    `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var limit *decimal.Decimal
	if req.Price != nil {
		p := decimal.NewFromFloat(*req.Price)
		limit = &p
	}

	trade, err := s.Desk.PlaceOrder(r.Context(), req.Symbol, domain.Side(req.Side), req.Quantity, limit)
	if err != nil {
		s.writeError(w, orderErrorStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newTradeDTO(trade))
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.Desk.TradeHistory(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]tradeDTO, len(trades))
	for i, t := range trades {
		out[i] = newTradeDTO(t)
	}
	s.writeJSON(w, http.StatusOK, out)
}

type adviceRequest struct {
	RiskLevel string  `json:"riskLevel"`
	Budget    float64 `json:"budget"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	advice, err := s.Desk.Recommend(r.Context(), req.RiskLevel, decimal.NewFromFloat(req.Budget))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, advice)
}

func (s *Server) handleRebalance(w http.ResponseWriter, r *http.Request) {
	plan, err := s.Desk.Optimize(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.Desk.Analyze(r.Context(), r.PathValue("symbol"))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	report, err := s.Desk.Sentiment(r.Context(), r.PathValue("symbol"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleActivityStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat keeps proxies from dropping the connection
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(activityPollInterval)
	defer pollTicker.Stop()

	sendActivity := func() error {
		items, err := s.Desk.Activity(r.Context(), activityStreamLimit)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(items)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: activity\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return nil
	}

	if err := sendActivity(); err != nil {
		s.Logger.Warn("activity stream initial send failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendActivity(); err != nil {
				s.Logger.Warn("activity stream poll failed", zap.Error(err))
				return
			}
		}
	}
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, broker.ErrUnknownInstrument):
		return http.StatusNotFound
	case errors.Is(err, broker.ErrInvalidQuantity), errors.Is(err, broker.ErrUnknownSide):
		return http.StatusBadRequest
	case errors.Is(err, broker.ErrInsufficientHoldings):
		return http.StatusConflict
	case errors.Is(err, broker.ErrExecutionFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
