package domain

import "context"

// Exchange defines the interface for the spot and futures REST surfaces.
type Exchange interface {
	// Spot
	GetAccountBalance(ctx context.Context) (map[string]Balance, error)
	GetAllPrices(ctx context.Context) (map[string]float64, error)
	Get24hrTickers(ctx context.Context, symbols []string) (map[string]Ticker, error)
	GetOpenOrders(ctx context.Context, symbol string) ([]Order, error)
	GetRecentTrades(ctx context.Context, symbol string, limit int) ([]Trade, error)

	// Futures
	GetFuturesAccount(ctx context.Context) (*FuturesAccount, error)
	GetFuturesPositions(ctx context.Context) ([]Position, error)
	GetFuturesOpenOrders(ctx context.Context, symbol string) ([]Order, error)
	GetFuturesMarkPrices(ctx context.Context) (map[string]MarkPrice, error)
	GetFuturesIncome(ctx context.Context, incomeType string, limit int) ([]IncomeEvent, error)
	GetFuturesTradeHistory(ctx context.Context, limit int) ([]IncomeEvent, error)
	GetFuturesClosedOrders(ctx context.Context, symbol string, limit int) ([]ClosedOrder, error)
	ClosePosition(ctx context.Context, symbol string, side Side, quantity float64) (*OrderResult, error)

	HasCredentials() bool
}

// GoalRepository defines storage for the compounding-goal document.
type GoalRepository interface {
	Get(ctx context.Context) (*GoalDocument, error)
	Set(ctx context.Context, doc *GoalDocument) error
	Delete(ctx context.Context) error
}
