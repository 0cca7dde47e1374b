package usecase_test

import (
	"context"

	"github.com/vitos/binance_dashboard/internal/domain"
)

// fakeExchange returns canned data for service tests.
type fakeExchange struct {
	creds    bool
	balances map[string]domain.Balance
	prices   map[string]float64
	tickers  map[string]domain.Ticker

	account   *domain.FuturesAccount
	positions []domain.Position

	tickerSymbols []string
	closed        []closeCall
	err           error
}

type closeCall struct {
	symbol   string
	side     domain.Side
	quantity float64
}

func (f *fakeExchange) HasCredentials() bool { return f.creds }

func (f *fakeExchange) GetAccountBalance(ctx context.Context) (map[string]domain.Balance, error) {
	return f.balances, f.err
}

func (f *fakeExchange) GetAllPrices(ctx context.Context) (map[string]float64, error) {
	return f.prices, f.err
}

func (f *fakeExchange) Get24hrTickers(ctx context.Context, symbols []string) (map[string]domain.Ticker, error) {
	f.tickerSymbols = symbols
	return f.tickers, f.err
}

func (f *fakeExchange) GetOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	return nil, f.err
}

func (f *fakeExchange) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]domain.Trade, error) {
	return nil, f.err
}

func (f *fakeExchange) GetFuturesAccount(ctx context.Context) (*domain.FuturesAccount, error) {
	return f.account, f.err
}

func (f *fakeExchange) GetFuturesPositions(ctx context.Context) ([]domain.Position, error) {
	return f.positions, f.err
}

func (f *fakeExchange) GetFuturesOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	return nil, f.err
}

func (f *fakeExchange) GetFuturesMarkPrices(ctx context.Context) (map[string]domain.MarkPrice, error) {
	return nil, f.err
}

func (f *fakeExchange) GetFuturesIncome(ctx context.Context, incomeType string, limit int) ([]domain.IncomeEvent, error) {
	return nil, f.err
}

func (f *fakeExchange) GetFuturesTradeHistory(ctx context.Context, limit int) ([]domain.IncomeEvent, error) {
	return nil, f.err
}

func (f *fakeExchange) GetFuturesClosedOrders(ctx context.Context, symbol string, limit int) ([]domain.ClosedOrder, error) {
	return nil, f.err
}

func (f *fakeExchange) ClosePosition(ctx context.Context, symbol string, side domain.Side, quantity float64) (*domain.OrderResult, error) {
	f.closed = append(f.closed, closeCall{symbol, side, quantity})
	if f.err != nil {
		return nil, f.err
	}
	return &domain.OrderResult{OrderID: 1, Symbol: symbol, Status: "NEW"}, nil
}
