package usecase

import (
	"context"
	"sort"

	"github.com/vitos/binance_dashboard/internal/domain"
	"go.uber.org/zap"
)

// Assets valued at 1 USD without a ticker lookup.
var stableQuotes = map[string]bool{"USDT": true, "USD": true, "BUSD": true}

// Anything worth less than this in USD is dust and dropped from holdings.
const dustThresholdUSD = 0.01

// PortfolioService values the spot account in USD and derives risk metrics.
type PortfolioService struct {
	exchange domain.Exchange
	logger   *zap.Logger
}

func NewPortfolioService(exchange domain.Exchange, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{exchange: exchange, logger: logger}
}

// PortfolioSnapshot is the payload served by GET /portfolio.
type PortfolioSnapshot struct {
	TotalValue  float64            `json:"totalValue"`
	Holdings    []domain.Holding   `json:"holdings"`
	RiskMetrics domain.RiskMetrics `json:"riskMetrics"`
	LastUpdated string             `json:"lastUpdated"`
}

// CalculatePortfolioValue joins balances with prices: stable quote assets at
// 1, everything else via its <ASSET>USDT ticker. Dust is dropped, allocation
// is a percentage of the retained total, holdings sort descending by value.
func CalculatePortfolioValue(balances map[string]domain.Balance, prices map[string]float64, tickers map[string]domain.Ticker) domain.Portfolio {
	var totalValue float64
	holdings := []domain.Holding{}

	for currency, balance := range balances {
		var valueUSD, price, change24h float64

		if stableQuotes[currency] {
			valueUSD = balance.Total
			price = 1
		} else {
			symbol := currency + "USDT"
			if p, ok := prices[symbol]; ok {
				price = p
				change24h = tickers[symbol].Change24h
				valueUSD = balance.Total * p
			}
		}

		if valueUSD > dustThresholdUSD {
			holdings = append(holdings, domain.Holding{
				Currency:  currency,
				Amount:    balance.Total,
				Free:      balance.Free,
				Used:      balance.Used,
				Price:     price,
				ValueUSD:  valueUSD,
				Change24h: change24h,
			})
			totalValue += valueUSD
		}
	}

	for i := range holdings {
		holdings[i].Allocation = holdings[i].ValueUSD / totalValue * 100
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].ValueUSD > holdings[j].ValueUSD
	})

	return domain.Portfolio{TotalValue: totalValue, Holdings: holdings}
}

// Snapshot fetches balances, prices and tickers and returns the valued
// portfolio with risk metrics.
func (s *PortfolioService) Snapshot(ctx context.Context) (*domain.Portfolio, domain.RiskMetrics, error) {
	balances, err := s.exchange.GetAccountBalance(ctx)
	if err != nil {
		return nil, domain.RiskMetrics{}, err
	}

	prices, err := s.exchange.GetAllPrices(ctx)
	if err != nil {
		return nil, domain.RiskMetrics{}, err
	}

	var symbols []string
	for currency := range balances {
		if !stableQuotes[currency] {
			symbols = append(symbols, currency+"USDT")
		}
	}

	tickers := map[string]domain.Ticker{}
	if len(symbols) > 0 {
		tickers, err = s.exchange.Get24hrTickers(ctx, symbols)
		if err != nil {
			return nil, domain.RiskMetrics{}, err
		}
	}

	portfolio := CalculatePortfolioValue(balances, prices, tickers)
	metrics := CalculateRiskMetrics(portfolio.Holdings, portfolio.TotalValue)

	s.logger.Debug("Portfolio snapshot",
		zap.Float64("totalValue", portfolio.TotalValue),
		zap.Int("holdings", len(portfolio.Holdings)))

	return &portfolio, metrics, nil
}
