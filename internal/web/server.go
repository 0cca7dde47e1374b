package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitos/binance_dashboard/internal/domain"
	"github.com/vitos/binance_dashboard/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router    *http.ServeMux
	server    *http.Server
	exchange  domain.Exchange
	portfolio *usecase.PortfolioService
	futures   *usecase.FuturesService
	goals     domain.GoalRepository
	logger    *zap.Logger
}

func NewServer(
	port int,
	exchange domain.Exchange,
	portfolio *usecase.PortfolioService,
	futures *usecase.FuturesService,
	goals domain.GoalRepository,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		exchange:  exchange,
		portfolio: portfolio,
		futures:   futures,
		goals:     goals,
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.withRequestLog(s.router),
	}
	return s
}

func (s *Server) routes() {
	// Spot portfolio
	s.router.HandleFunc("GET /portfolio", s.handlePortfolio)

	// Futures
	s.router.HandleFunc("GET /futures", s.handleFutures)
	s.router.HandleFunc("POST /futures", s.handleFuturesAction)

	// Orders & trade history
	s.router.HandleFunc("GET /orders", s.handleOrders)
	s.router.HandleFunc("GET /trades", s.handleTrades)

	// Public tickers
	s.router.HandleFunc("GET /prices", s.handlePrices)

	// Compounding goal document
	s.router.HandleFunc("GET /compound", s.handleGetGoal)
	s.router.HandleFunc("POST /compound", s.handleSetGoal)
	s.router.HandleFunc("DELETE /compound", s.handleDeleteGoal)
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
