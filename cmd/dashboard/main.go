package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/binance_dashboard/internal/config"
	"github.com/vitos/binance_dashboard/internal/infrastructure/exchange"
	"github.com/vitos/binance_dashboard/internal/infrastructure/logger"
	"github.com/vitos/binance_dashboard/internal/infrastructure/storage"
	"github.com/vitos/binance_dashboard/internal/usecase"
	"github.com/vitos/binance_dashboard/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load env + config
	_ = godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "dashboard.db"
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Exchange (Binance spot + futures)
	spotURL := cfg.Exchange.SpotEndpoint
	futuresURL := cfg.Exchange.FuturesEndpoint
	if os.Getenv("BINANCE_TESTNET") == "true" {
		spotURL = exchange.SpotTestnetURL
		futuresURL = exchange.FuturesTestnetURL
	}
	if spotURL == "" {
		spotURL = exchange.SpotBaseURL
	}
	if futuresURL == "" {
		futuresURL = exchange.FuturesBaseURL
	}
	adapter := exchange.NewBinanceAdapter(
		os.Getenv("BINANCE_API_KEY"),
		os.Getenv("BINANCE_API_SECRET"),
		spotURL,
		futuresURL,
		log,
	)
	if !adapter.HasCredentials() {
		log.Warn("API keys not configured; authenticated endpoints will return 401")
	}

	// 5. Init Services
	portfolioService := usecase.NewPortfolioService(adapter, log)
	futuresService := usecase.NewFuturesService(adapter, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. Background mark-price poll: keeps the futures clock warm and gives
	// the operator a funding-rate heartbeat in the logs.
	pollMs := cfg.Polling.MarkPriceMs
	if pollMs == 0 {
		pollMs = 10000
	}
	markPoller := usecase.NewPoller("mark-prices", time.Duration(pollMs)*time.Millisecond, func(ctx context.Context) error {
		prices, err := adapter.GetFuturesMarkPrices(ctx)
		if err != nil {
			return err
		}
		if btc, ok := prices["BTCUSDT"]; ok {
			log.Debug("Mark prices refreshed",
				zap.Int("symbols", len(prices)),
				zap.Float64("btcMark", btc.MarkPrice),
				zap.Float64("btcFunding", btc.FundingRate))
		}
		return nil
	}, log)
	go markPoller.Run(ctx)

	// 7. Init Web Server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080 // Default
	}
	server := web.NewServer(port, adapter, portfolioService, futuresService, store, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
