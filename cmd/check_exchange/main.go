package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vitos/binance_dashboard/internal/infrastructure/exchange"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("BINANCE_API_KEY")
	apiSecret := os.Getenv("BINANCE_API_SECRET")

	spotURL := exchange.SpotBaseURL
	futuresURL := exchange.FuturesBaseURL
	if os.Getenv("BINANCE_TESTNET") == "true" {
		spotURL = exchange.SpotTestnetURL
		futuresURL = exchange.FuturesTestnetURL
	}

	fmt.Printf("Testing Binance Interaction...\n")
	fmt.Printf("Spot Endpoint: %s\n", spotURL)
	fmt.Printf("Futures Endpoint: %s\n", futuresURL)
	if len(apiKey) >= 4 {
		fmt.Printf("API Key: %s...\n", apiKey[:4])
	}

	adapter := exchange.NewBinanceAdapter(apiKey, apiSecret, spotURL, futuresURL, zap.NewNop())
	ctx := context.Background()

	// 1. Check Public Endpoint (Prices)
	prices, err := adapter.GetAllPrices(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get prices: %v\n", err)
	} else {
		fmt.Printf("✅ Prices loaded: %d symbols, BTCUSDT=%f\n", len(prices), prices["BTCUSDT"])
	}

	// 2. Check Spot Account
	balances, err := adapter.GetAccountBalance(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get spot balances: %v\n", err)
	} else {
		fmt.Printf("✅ Spot balances: %d assets with nonzero total\n", len(balances))
		for asset, b := range balances {
			fmt.Printf("   %s: free=%f used=%f total=%f\n", asset, b.Free, b.Used, b.Total)
		}
	}

	// 3. Check Futures Account
	account, err := adapter.GetFuturesAccount(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get futures account: %v\n", err)
	} else {
		fmt.Printf("✅ Futures account: wallet=%f margin=%f available=%f\n",
			account.TotalWalletBalance, account.TotalMarginBalance, account.AvailableBalance)
	}

	// 4. Check Futures Positions
	positions, err := adapter.GetFuturesPositions(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get futures positions: %v\n", err)
	} else {
		fmt.Printf("✅ Open positions: %d\n", len(positions))
		for _, p := range positions {
			fmt.Printf("   %s %s amt=%f entry=%f mark=%f pnl=%f roe=%.2f%%\n",
				p.Symbol, p.Side, p.PositionAmt, p.EntryPrice, p.MarkPrice, p.UnrealizedProfit, p.ROE)
		}
	}
}
