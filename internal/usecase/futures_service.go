package usecase

import (
	"context"
	"sync"

	"github.com/vitos/binance_dashboard/internal/domain"
	"go.uber.org/zap"
)

// FuturesService aggregates the futures account view and forwards position
// closes to the exchange.
type FuturesService struct {
	exchange domain.Exchange
	logger   *zap.Logger
}

func NewFuturesService(exchange domain.Exchange, logger *zap.Logger) *FuturesService {
	return &FuturesService{exchange: exchange, logger: logger}
}

// FuturesOverview is the default payload of GET /futures.
type FuturesOverview struct {
	Account     *domain.FuturesAccount    `json:"account"`
	Positions   []domain.Position         `json:"positions"`
	RiskMetrics domain.FuturesRiskMetrics `json:"riskMetrics"`
}

// Overview fetches account info and the position list concurrently and joins
// them with derived risk metrics.
func (s *FuturesService) Overview(ctx context.Context) (*FuturesOverview, error) {
	var (
		wg           sync.WaitGroup
		account      *domain.FuturesAccount
		accountErr   error
		positions    []domain.Position
		positionsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		account, accountErr = s.exchange.GetFuturesAccount(ctx)
	}()
	go func() {
		defer wg.Done()
		positions, positionsErr = s.exchange.GetFuturesPositions(ctx)
	}()
	wg.Wait()
	if accountErr != nil {
		return nil, accountErr
	}
	if positionsErr != nil {
		return nil, positionsErr
	}

	return &FuturesOverview{
		Account:     account,
		Positions:   positions,
		RiskMetrics: CalculateFuturesRiskMetrics(positions, account),
	}, nil
}

// Close places a reduce-only market order closing the given position size.
// The quantity is caller-supplied; a position-size change between the read
// and the close can over- or under-close.
func (s *FuturesService) Close(ctx context.Context, symbol string, side domain.Side, quantity float64) (*domain.OrderResult, error) {
	s.logger.Info("Closing position",
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.Float64("quantity", quantity))
	return s.exchange.ClosePosition(ctx, symbol, side, quantity)
}
