package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vitos/binance_dashboard/internal/domain"
	"github.com/vitos/binance_dashboard/internal/usecase"
	"go.uber.org/zap"
)

// envelope is the response shape the dashboard UI consumes.
type envelope struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data"`
	LastUpdated string      `json:"lastUpdated,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeData(w http.ResponseWriter, data interface{}) {
	s.writeJSON(w, http.StatusOK, envelope{
		Success:     true,
		Data:        data,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

// writeExchangeError maps the error taxonomy onto HTTP statuses: missing
// credentials to 401, everything else (exchange and transport failures) to
// 500 with the raw message.
func (s *Server) writeExchangeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrCredentialsMissing) {
		s.writeError(w, http.StatusUnauthorized, domain.ErrCredentialsMissing.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) requireCredentials(w http.ResponseWriter) bool {
	if !s.exchange.HasCredentials() {
		s.writeError(w, http.StatusUnauthorized, domain.ErrCredentialsMissing.Error())
		return false
	}
	return true
}

// GET /portfolio

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !s.exchange.HasCredentials() {
		s.writeError(w, http.StatusUnauthorized,
			"API keys not configured. Please add BINANCE_API_KEY and BINANCE_API_SECRET to your environment variables.")
		return
	}

	portfolio, metrics, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("Portfolio snapshot failed", zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: usecase.PortfolioSnapshot{
			TotalValue:  portfolio.TotalValue,
			Holdings:    portfolio.Holdings,
			RiskMetrics: metrics,
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// GET /futures?type=positions|account|orders[&symbol=]

func (s *Server) handleFutures(w http.ResponseWriter, r *http.Request) {
	if !s.requireCredentials(w) {
		return
	}

	var (
		data interface{}
		err  error
	)
	switch r.URL.Query().Get("type") {
	case "account":
		data, err = s.exchange.GetFuturesAccount(r.Context())
	case "orders":
		data, err = s.exchange.GetFuturesOpenOrders(r.Context(), r.URL.Query().Get("symbol"))
	default:
		data, err = s.futures.Overview(r.Context())
	}
	if err != nil {
		s.logger.Error("Futures request failed", zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}
	s.writeData(w, data)
}

// POST /futures {action, symbol, side, quantity}

func (s *Server) handleFuturesAction(w http.ResponseWriter, r *http.Request) {
	if !s.requireCredentials(w) {
		return
	}

	var body struct {
		Action   string      `json:"action"`
		Symbol   string      `json:"symbol"`
		Side     domain.Side `json:"side"`
		Quantity float64     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.Action != "closePosition" {
		s.writeError(w, http.StatusBadRequest, "Unknown action")
		return
	}
	if body.Symbol == "" || body.Side == "" || body.Quantity == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing required fields: symbol, side, quantity")
		return
	}

	result, err := s.futures.Close(r.Context(), body.Symbol, body.Side, body.Quantity)
	if err != nil {
		s.logger.Error("Close position failed", zap.String("symbol", body.Symbol), zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

// GET /orders?type=open|pending|<other>[&symbol=]

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireCredentials(w) {
		return
	}

	orderType := r.URL.Query().Get("type")
	if orderType == "" {
		orderType = "open"
	}
	symbol := r.URL.Query().Get("symbol")

	var (
		data interface{}
		err  error
	)
	if orderType == "open" || orderType == "pending" {
		data, err = s.exchange.GetOpenOrders(r.Context(), symbol)
	} else {
		if symbol == "" {
			symbol = "BTCUSDT"
		}
		data, err = s.exchange.GetRecentTrades(r.Context(), symbol, 50)
	}
	if err != nil {
		s.logger.Error("Orders request failed", zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}
	s.writeData(w, data)
}

// GET /trades?type=pnl|orders&limit=

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	if !s.requireCredentials(w) {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	var data interface{}
	if r.URL.Query().Get("type") == "pnl" {
		data, err = s.exchange.GetFuturesTradeHistory(r.Context(), limit)
	} else {
		data, err = s.exchange.GetFuturesClosedOrders(r.Context(), "", limit)
	}
	if err != nil {
		s.logger.Error("Trades request failed", zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}
	s.writeData(w, data)
}

// GET /prices?symbols=A,B,C

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	symbols := []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"}
	if raw := r.URL.Query().Get("symbols"); raw != "" {
		symbols = symbols[:0]
		for _, sym := range strings.Split(raw, ",") {
			symbols = append(symbols, strings.ReplaceAll(sym, "/", ""))
		}
	}

	tickers, err := s.exchange.Get24hrTickers(r.Context(), symbols)
	if err != nil {
		s.logger.Error("Prices request failed", zap.Error(err))
		s.writeExchangeError(w, err)
		return
	}
	s.writeData(w, tickers)
}

// GET|POST|DELETE /compound

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	doc, err := s.goals.Get(r.Context())
	if err != nil {
		// Reads degrade to the default document rather than failing the page.
		s.logger.Error("Goal read failed", zap.Error(err))
		doc = domain.DefaultGoalDocument()
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartingBalance *float64                `json:"startingBalance"`
		CompletedTrades []domain.CompletedTrade `json:"completedTrades"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := &domain.GoalDocument{
		StartingBalance: body.StartingBalance,
		CompletedTrades: body.CompletedTrades,
	}
	if err := s.goals.Set(r.Context(), doc); err != nil {
		s.logger.Error("Goal write failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: doc})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context()); err != nil {
		s.logger.Error("Goal delete failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
