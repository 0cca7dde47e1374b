package usecase_test

import (
	"reflect"
	"testing"

	"github.com/vitos/binance_dashboard/internal/domain"
	"github.com/vitos/binance_dashboard/internal/usecase"
)

func holding(currency string, valueUSD, allocation float64) domain.Holding {
	return domain.Holding{Currency: currency, ValueUSD: valueUSD, Allocation: allocation}
}

func TestCalculateRiskMetricsEmpty(t *testing.T) {
	m := usecase.CalculateRiskMetrics(nil, 0)
	if m.RiskLevel != "N/A" || m.VolatilityExposure != "N/A" {
		t.Errorf("empty metrics = %+v", m)
	}
	if m.DiversificationScore != "0.0" || m.LargestPosition != "0.0" || m.StablecoinRatio != "0.0" {
		t.Errorf("empty metrics not zeroed: %+v", m)
	}
}

func TestCalculateRiskMetricsPure(t *testing.T) {
	holdings := []domain.Holding{
		holding("BTC", 600, 60),
		holding("USDT", 400, 40),
	}
	a := usecase.CalculateRiskMetrics(holdings, 1000)
	b := usecase.CalculateRiskMetrics(holdings, 1000)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("not pure: %+v vs %+v", a, b)
	}
}

func TestStablecoinRatio(t *testing.T) {
	holdings := []domain.Holding{
		holding("USDT", 600, 60),
		holding("BTC", 400, 40),
	}
	m := usecase.CalculateRiskMetrics(holdings, 1000)
	if m.StablecoinRatio != "60.0" {
		t.Errorf("stablecoinRatio = %s, want 60.0", m.StablecoinRatio)
	}
	if m.RiskLevel != "Conservative" {
		t.Errorf("riskLevel = %s, want Conservative", m.RiskLevel)
	}
}

func TestDiversificationScoreBoundaries(t *testing.T) {
	// Single holding: always 0, regardless of allocation.
	one := []domain.Holding{holding("BTC", 1000, 100)}
	if m := usecase.CalculateRiskMetrics(one, 1000); m.DiversificationScore != "0.0" {
		t.Errorf("n=1 score = %s, want 0.0", m.DiversificationScore)
	}

	// Four equal holdings: perfectly even, score 100.
	four := []domain.Holding{
		holding("BTC", 250, 25),
		holding("ETH", 250, 25),
		holding("SOL", 250, 25),
		holding("USDT", 250, 25),
	}
	if m := usecase.CalculateRiskMetrics(four, 1000); m.DiversificationScore != "100.0" {
		t.Errorf("4 equal holdings score = %s, want 100.0", m.DiversificationScore)
	}
}

func TestSpotRiskLevels(t *testing.T) {
	tests := []struct {
		name     string
		holdings []domain.Holding
		total    float64
		want     string
	}{
		{
			"stablecoin heavy -> Conservative",
			[]domain.Holding{holding("USDT", 600, 60), holding("BTC", 400, 40)},
			1000, "Conservative",
		},
		{
			"concentrated -> Aggressive",
			[]domain.Holding{holding("BTC", 800, 80), holding("USDT", 200, 20)},
			1000, "Aggressive",
		},
		{
			"no stablecoins -> Aggressive",
			[]domain.Holding{holding("BTC", 600, 60), holding("ETH", 400, 40)},
			1000, "Aggressive",
		},
		{
			"balanced -> Moderate",
			[]domain.Holding{holding("BTC", 400, 40), holding("ETH", 300, 30), holding("USDT", 300, 30)},
			1000, "Moderate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := usecase.CalculateRiskMetrics(tt.holdings, tt.total)
			if m.RiskLevel != tt.want {
				t.Errorf("riskLevel = %s, want %s", m.RiskLevel, tt.want)
			}
		})
	}
}

func TestVolatilityExposure(t *testing.T) {
	high := []domain.Holding{holding("BTC", 800, 80), holding("USDT", 200, 20)}
	if m := usecase.CalculateRiskMetrics(high, 1000); m.VolatilityExposure != "High" {
		t.Errorf("volatilityExposure = %s, want High", m.VolatilityExposure)
	}

	medium := []domain.Holding{holding("ETH", 500, 50), holding("USDT", 500, 50)}
	if m := usecase.CalculateRiskMetrics(medium, 1000); m.VolatilityExposure != "Medium" {
		t.Errorf("volatilityExposure = %s, want Medium", m.VolatilityExposure)
	}

	low := []domain.Holding{holding("XRP", 700, 70), holding("USDT", 300, 30)}
	if m := usecase.CalculateRiskMetrics(low, 1000); m.VolatilityExposure != "Low" {
		t.Errorf("volatilityExposure = %s, want Low", m.VolatilityExposure)
	}
}

func position(side domain.Side, notional, pnl float64, leverage int) domain.Position {
	return domain.Position{
		Side:             side,
		NotionalValue:    notional,
		UnrealizedProfit: pnl,
		Leverage:         leverage,
	}
}

func TestFuturesRiskMetricsEmpty(t *testing.T) {
	m := usecase.CalculateFuturesRiskMetrics(nil, nil)
	if m.RiskLevel != "N/A" || m.PositionCount != 0 || m.TotalPnL != "0.00" {
		t.Errorf("empty metrics = %+v", m)
	}
}

func TestFuturesRiskLevels(t *testing.T) {
	account := &domain.FuturesAccount{
		TotalWalletBalance:         1000,
		TotalMarginBalance:         1000,
		TotalPositionInitialMargin: 100, // 10% margin usage
	}

	tests := []struct {
		name      string
		positions []domain.Position
		want      string
	}{
		{"leverage 25 -> Very High", []domain.Position{position(domain.SideLong, 100, 0, 25)}, "Very High"},
		{"leverage 12 -> High", []domain.Position{position(domain.SideLong, 100, 0, 12)}, "High"},
		{"leverage 5 -> Medium", []domain.Position{position(domain.SideLong, 100, 0, 5)}, "Medium"},
		{"leverage 3 -> Low", []domain.Position{position(domain.SideLong, 100, 0, 3)}, "Low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := usecase.CalculateFuturesRiskMetrics(tt.positions, account)
			if m.RiskLevel != tt.want {
				t.Errorf("riskLevel = %s, want %s", m.RiskLevel, tt.want)
			}
		})
	}

	// Margin usage alone can escalate.
	hot := &domain.FuturesAccount{
		TotalWalletBalance:         1000,
		TotalMarginBalance:         1000,
		TotalPositionInitialMargin: 850,
	}
	m := usecase.CalculateFuturesRiskMetrics([]domain.Position{position(domain.SideLong, 100, 0, 2)}, hot)
	if m.RiskLevel != "Very High" {
		t.Errorf("riskLevel = %s, want Very High at 85%% margin usage", m.RiskLevel)
	}
}

func TestFuturesRiskMetricsAggregation(t *testing.T) {
	account := &domain.FuturesAccount{
		TotalWalletBalance:         2000,
		TotalMarginBalance:         2000,
		TotalPositionInitialMargin: 600,
	}
	positions := []domain.Position{
		position(domain.SideLong, 10000, 150, 10),
		position(domain.SideShort, 5000, -50, 4),
	}

	m := usecase.CalculateFuturesRiskMetrics(positions, account)
	if m.TotalPnL != "100.00" {
		t.Errorf("totalPnL = %s, want 100.00", m.TotalPnL)
	}
	if m.TotalPnLPercent != "5.00" {
		t.Errorf("totalPnLPercent = %s, want 5.00", m.TotalPnLPercent)
	}
	if m.LongExposure != "10000.00" || m.ShortExposure != "5000.00" || m.TotalNotional != "15000.00" {
		t.Errorf("exposure = %s/%s/%s", m.LongExposure, m.ShortExposure, m.TotalNotional)
	}
	if m.MaxLeverage != 10 || m.AvgLeverage != "7.0" {
		t.Errorf("leverage = %d/%s", m.MaxLeverage, m.AvgLeverage)
	}
	if m.MarginUsage != "30.0" {
		t.Errorf("marginUsage = %s, want 30.0", m.MarginUsage)
	}
	if m.PositionCount != 2 {
		t.Errorf("positionCount = %d", m.PositionCount)
	}
}
