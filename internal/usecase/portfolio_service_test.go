package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/vitos/binance_dashboard/internal/domain"
	"github.com/vitos/binance_dashboard/internal/usecase"
	"go.uber.org/zap"
)

func TestCalculatePortfolioValue(t *testing.T) {
	balances := map[string]domain.Balance{
		"BTC":  {Free: 0.5, Total: 0.5},
		"USDT": {Free: 1000, Total: 1000},
	}
	prices := map[string]float64{"BTCUSDT": 50000}
	tickers := map[string]domain.Ticker{"BTCUSDT": {Price: 50000, Change24h: 2.5}}

	p := usecase.CalculatePortfolioValue(balances, prices, tickers)

	if p.TotalValue != 26000 {
		t.Fatalf("totalValue = %f, want 26000", p.TotalValue)
	}
	if len(p.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(p.Holdings))
	}

	// Sorted descending by value: BTC first.
	btc, usdt := p.Holdings[0], p.Holdings[1]
	if btc.Currency != "BTC" || btc.ValueUSD != 25000 {
		t.Errorf("holdings[0] = %+v", btc)
	}
	if usdt.Currency != "USDT" || usdt.ValueUSD != 1000 || usdt.Price != 1 {
		t.Errorf("holdings[1] = %+v", usdt)
	}
	if math.Abs(btc.Allocation-96.153846) > 0.001 {
		t.Errorf("BTC allocation = %f", btc.Allocation)
	}
	if btc.Change24h != 2.5 {
		t.Errorf("BTC change24h = %f", btc.Change24h)
	}

	var sum float64
	for _, h := range p.Holdings {
		sum += h.Allocation
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("allocations sum to %f, want 100", sum)
	}
}

func TestCalculatePortfolioValueDropsDust(t *testing.T) {
	balances := map[string]domain.Balance{
		"USDT": {Free: 100, Total: 100},
		"SHIB": {Free: 10, Total: 10},   // priced, but worth under a cent
		"ABC":  {Free: 500, Total: 500}, // no USDT market
	}
	prices := map[string]float64{"SHIBUSDT": 0.00001}

	p := usecase.CalculatePortfolioValue(balances, prices, nil)
	if len(p.Holdings) != 1 || p.Holdings[0].Currency != "USDT" {
		t.Fatalf("holdings = %+v, want only USDT", p.Holdings)
	}
	if p.TotalValue != 100 {
		t.Errorf("totalValue = %f, want 100", p.TotalValue)
	}
}

func TestPortfolioSnapshot(t *testing.T) {
	fake := &fakeExchange{
		creds: true,
		balances: map[string]domain.Balance{
			"BTC":  {Free: 0.5, Total: 0.5},
			"USDT": {Free: 1000, Total: 1000},
		},
		prices:  map[string]float64{"BTCUSDT": 50000},
		tickers: map[string]domain.Ticker{"BTCUSDT": {Change24h: 1.0}},
	}
	svc := usecase.NewPortfolioService(fake, zap.NewNop())

	portfolio, metrics, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if portfolio.TotalValue != 26000 {
		t.Errorf("totalValue = %f", portfolio.TotalValue)
	}
	// 96% BTC concentration with <10% stablecoins.
	if metrics.RiskLevel != "Aggressive" {
		t.Errorf("riskLevel = %s, want Aggressive", metrics.RiskLevel)
	}
	if fake.tickerSymbols == nil || fake.tickerSymbols[0] != "BTCUSDT" {
		t.Errorf("ticker lookup symbols = %v", fake.tickerSymbols)
	}
}
