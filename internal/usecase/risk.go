package usecase

import (
	"strconv"

	"github.com/vitos/binance_dashboard/internal/domain"
)

// Metric thresholds mirror the dashboard display contract.
var stablecoins = map[string]bool{
	"USDT": true, "USDC": true, "BUSD": true, "DAI": true, "TUSD": true, "FDUSD": true,
}

var highVolatility = map[string]bool{
	"BTC": true, "ETH": true, "SOL": true, "DOGE": true, "SHIB": true, "PEPE": true, "FLOKI": true, "BONK": true,
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// CalculateRiskMetrics derives spot portfolio risk from holdings, which must
// be sorted descending by USD value. Pure: identical input, identical output.
func CalculateRiskMetrics(holdings []domain.Holding, totalValue float64) domain.RiskMetrics {
	if len(holdings) == 0 {
		return domain.RiskMetrics{
			DiversificationScore: "0.0",
			LargestPosition:      "0.0",
			VolatilityExposure:   "N/A",
			StablecoinRatio:      "0.0",
			RiskLevel:            "N/A",
		}
	}

	largestPosition := holdings[0].Allocation

	var stablecoinValue float64
	for _, h := range holdings {
		if stablecoins[h.Currency] {
			stablecoinValue += h.ValueUSD
		}
	}
	var stablecoinRatio float64
	if totalValue > 0 {
		stablecoinRatio = stablecoinValue / totalValue * 100
	}

	// Normalized inverse HHI: 0 = fully concentrated, 100 = perfectly even.
	n := len(holdings)
	var hhi float64
	for _, h := range holdings {
		f := h.Allocation / 100
		hhi += f * f
	}
	var diversificationScore float64
	if n > 1 {
		diversificationScore = (1 - hhi) / (1 - 1/float64(n)) * 100
		if diversificationScore > 100 {
			diversificationScore = 100
		}
	}

	var highVolExposure float64
	for _, h := range holdings {
		if highVolatility[h.Currency] {
			highVolExposure += h.Allocation
		}
	}
	volatilityExposure := "Low"
	if highVolExposure > 70 {
		volatilityExposure = "High"
	} else if highVolExposure > 40 {
		volatilityExposure = "Medium"
	}

	var riskLevel string
	switch {
	case stablecoinRatio > 50:
		riskLevel = "Conservative"
	case largestPosition > 70 || stablecoinRatio < 10:
		riskLevel = "Aggressive"
	default:
		riskLevel = "Moderate"
	}

	return domain.RiskMetrics{
		DiversificationScore: fixed(diversificationScore, 1),
		LargestPosition:      fixed(largestPosition, 1),
		VolatilityExposure:   volatilityExposure,
		StablecoinRatio:      fixed(stablecoinRatio, 1),
		RiskLevel:            riskLevel,
	}
}

// CalculateFuturesRiskMetrics derives leverage and margin exposure from open
// positions and the account summary. Pure.
func CalculateFuturesRiskMetrics(positions []domain.Position, account *domain.FuturesAccount) domain.FuturesRiskMetrics {
	if len(positions) == 0 {
		return domain.FuturesRiskMetrics{
			TotalPnL:        "0.00",
			TotalPnLPercent: "0.00",
			MaxLeverage:     0,
			AvgLeverage:     "0.0",
			MarginUsage:     "0.0",
			PositionCount:   0,
			LongExposure:    "0.00",
			ShortExposure:   "0.00",
			TotalNotional:   "0.00",
			RiskLevel:       "N/A",
		}
	}

	var totalPnL, totalNotional, longExposure, shortExposure, leverageSum float64
	maxLeverage := 0
	for _, p := range positions {
		totalPnL += p.UnrealizedProfit
		totalNotional += p.NotionalValue
		if p.Side == domain.SideLong {
			longExposure += p.NotionalValue
		} else {
			shortExposure += p.NotionalValue
		}
		if p.Leverage > maxLeverage {
			maxLeverage = p.Leverage
		}
		leverageSum += float64(p.Leverage)
	}
	avgLeverage := leverageSum / float64(len(positions))

	var marginUsage, totalPnLPercent float64
	if account != nil {
		if account.TotalMarginBalance != 0 {
			marginUsage = account.TotalPositionInitialMargin / account.TotalMarginBalance * 100
		}
		if account.TotalWalletBalance != 0 {
			totalPnLPercent = totalPnL / account.TotalWalletBalance * 100
		}
	}

	var riskLevel string
	switch {
	case maxLeverage >= 20 || marginUsage > 80:
		riskLevel = "Very High"
	case maxLeverage >= 10 || marginUsage > 50:
		riskLevel = "High"
	case maxLeverage >= 5 || marginUsage > 30:
		riskLevel = "Medium"
	default:
		riskLevel = "Low"
	}

	return domain.FuturesRiskMetrics{
		TotalPnL:        fixed(totalPnL, 2),
		TotalPnLPercent: fixed(totalPnLPercent, 2),
		MaxLeverage:     maxLeverage,
		AvgLeverage:     fixed(avgLeverage, 1),
		MarginUsage:     fixed(marginUsage, 1),
		PositionCount:   len(positions),
		LongExposure:    fixed(longExposure, 2),
		ShortExposure:   fixed(shortExposure, 2),
		TotalNotional:   fixed(totalNotional, 2),
		RiskLevel:       riskLevel,
	}
}
