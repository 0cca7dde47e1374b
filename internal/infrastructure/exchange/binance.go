package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vitos/binance_dashboard/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	SpotBaseURL       = "https://api.binance.com"
	SpotTestnetURL    = "https://testnet.binance.vision"
	FuturesBaseURL    = "https://fapi.binance.com"
	FuturesTestnetURL = "https://testnet.binancefuture.com"
)

// BinanceAdapter performs signed and public REST calls against the Binance
// spot and USD-M futures surfaces. Each surface keeps its own server clock
// and request limiter.
type BinanceAdapter struct {
	apiKey     string
	apiSecret  string
	spotURL    string
	futuresURL string
	client     *http.Client

	spotClock    *ServerClock
	futuresClock *ServerClock

	spotLimiter    *rate.Limiter
	futuresLimiter *rate.Limiter

	logger *zap.Logger
}

func NewBinanceAdapter(apiKey, apiSecret, spotURL, futuresURL string, logger *zap.Logger) *BinanceAdapter {
	a := &BinanceAdapter{
		apiKey:     strings.TrimSpace(apiKey),
		apiSecret:  strings.TrimSpace(apiSecret),
		spotURL:    spotURL,
		futuresURL: futuresURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		// Binance weight limits allow well over this; the limiter only
		// smooths dashboard poll bursts.
		spotLimiter:    rate.NewLimiter(rate.Every(50*time.Millisecond), 10),
		futuresLimiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 10),
		logger:         logger,
	}
	a.spotClock = NewServerClock(func(ctx context.Context) (int64, error) {
		return a.fetchServerTime(ctx, a.spotURL+"/api/v3/time")
	})
	a.futuresClock = NewServerClock(func(ctx context.Context) (int64, error) {
		return a.fetchServerTime(ctx, a.futuresURL+"/fapi/v1/time")
	})
	return a
}

func (a *BinanceAdapter) HasCredentials() bool {
	return a.apiKey != "" && a.apiSecret != ""
}

func (a *BinanceAdapter) fetchServerTime(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var result struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.ServerTime, nil
}

// signedRequest appends the surface timestamp and signature to ps and issues
// the call with the API key header. Params are serialized in insertion order;
// the signature covers that exact string.
func (a *BinanceAdapter) signedRequest(ctx context.Context, method, baseURL, path string, clock *ServerClock, limiter *rate.Limiter, ps []param) ([]byte, error) {
	if !a.HasCredentials() {
		return nil, domain.ErrCredentialsMissing
	}

	timestamp := clock.Timestamp(ctx)
	ps = append(ps, param{"timestamp", strconv.FormatInt(timestamp, 10)})
	queryString := encodeParams(ps)
	signature := Sign(queryString, a.apiSecret)
	url := baseURL + path + "?" + queryString + "&signature=" + signature

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-MBX-APIKEY", a.apiKey)

	return a.do(req, limiter)
}

func (a *BinanceAdapter) publicRequest(ctx context.Context, baseURL, path string, limiter *rate.Limiter, ps []param) ([]byte, error) {
	url := baseURL + path
	if qs := encodeParams(ps); qs != "" {
		url += "?" + qs
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return a.do(req, limiter)
}

func (a *BinanceAdapter) do(req *http.Request, limiter *rate.Limiter) ([]byte, error) {
	if err := limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		apiErr := &domain.APIError{}
		if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.Msg == "" && apiErr.Code == 0) {
			apiErr.Msg = "Unknown error"
		}
		a.logger.Error("Binance API error",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Int("code", apiErr.Code),
			zap.String("msg", apiErr.Msg))
		return nil, apiErr
	}

	return body, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// isoTime renders an epoch-millisecond timestamp the way the dashboard
// expects datetimes: UTC with millisecond precision.
func isoTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}

// --- Spot ---

// GetAccountBalance returns spot balances with a nonzero total.
func (a *BinanceAdapter) GetAccountBalance(ctx context.Context) (map[string]domain.Balance, error) {
	resp, err := a.signedRequest(ctx, http.MethodGet, a.spotURL, "/api/v3/account", a.spotClock, a.spotLimiter, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Balances []struct {
			Asset  string `json:"asset"`
			Free   string `json:"free"`
			Locked string `json:"locked"`
		} `json:"balances"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}

	balances := make(map[string]domain.Balance)
	for _, b := range result.Balances {
		free := parseFloat(b.Free)
		locked := parseFloat(b.Locked)
		total := free + locked
		if total > 0 {
			balances[b.Asset] = domain.Balance{Free: free, Used: locked, Total: total}
		}
	}
	return balances, nil
}

// GetAllPrices returns last prices for every spot symbol.
func (a *BinanceAdapter) GetAllPrices(ctx context.Context) (map[string]float64, error) {
	resp, err := a.publicRequest(ctx, a.spotURL, "/api/v3/ticker/price", a.spotLimiter, nil)
	if err != nil {
		return nil, err
	}

	var result []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(result))
	for _, item := range result {
		prices[item.Symbol] = parseFloat(item.Price)
	}
	return prices, nil
}

// Get24hrTickers returns 24h stats for the requested symbols only.
func (a *BinanceAdapter) Get24hrTickers(ctx context.Context, symbols []string) (map[string]domain.Ticker, error) {
	resp, err := a.publicRequest(ctx, a.spotURL, "/api/v3/ticker/24hr", a.spotLimiter, nil)
	if err != nil {
		return nil, err
	}

	var result []struct {
		Symbol             string `json:"symbol"`
		LastPrice          string `json:"lastPrice"`
		PriceChangePercent string `json:"priceChangePercent"`
		HighPrice          string `json:"highPrice"`
		LowPrice           string `json:"lowPrice"`
		QuoteVolume        string `json:"quoteVolume"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}

	tickers := make(map[string]domain.Ticker)
	for _, t := range result {
		if !wanted[t.Symbol] {
			continue
		}
		tickers[t.Symbol] = domain.Ticker{
			Price:     parseFloat(t.LastPrice),
			Change24h: parseFloat(t.PriceChangePercent),
			High24h:   parseFloat(t.HighPrice),
			Low24h:    parseFloat(t.LowPrice),
			Volume24h: parseFloat(t.QuoteVolume),
		}
	}
	return tickers, nil
}

type spotOrderWire struct {
	OrderID     int64  `json:"orderId"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	OrigQty     string `json:"origQty"`
	ExecutedQty string `json:"executedQty"`
	Status      string `json:"status"`
	Time        int64  `json:"time"`
}

// GetOpenOrders returns open spot orders, optionally filtered by symbol.
func (a *BinanceAdapter) GetOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	var ps []param
	if symbol != "" {
		ps = append(ps, param{"symbol", symbol})
	}
	resp, err := a.signedRequest(ctx, http.MethodGet, a.spotURL, "/api/v3/openOrders", a.spotClock, a.spotLimiter, ps)
	if err != nil {
		return nil, err
	}

	var wire []spotOrderWire
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(wire))
	for _, o := range wire {
		origQty := parseFloat(o.OrigQty)
		executedQty := parseFloat(o.ExecutedQty)
		orders = append(orders, domain.Order{
			ID:        strconv.FormatInt(o.OrderID, 10),
			Symbol:    o.Symbol,
			Side:      strings.ToLower(o.Side),
			Type:      strings.ToLower(o.Type),
			Price:     parseFloat(o.Price),
			Amount:    origQty,
			Filled:    executedQty,
			Remaining: origQty - executedQty,
			Status:    strings.ToLower(o.Status),
			Timestamp: o.Time,
			Datetime:  isoTime(o.Time),
		})
	}
	return orders, nil
}

// GetRecentTrades returns the account's executed spot trades for a symbol.
func (a *BinanceAdapter) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]domain.Trade, error) {
	ps := []param{
		{"symbol", symbol},
		{"limit", strconv.Itoa(limit)},
	}
	resp, err := a.signedRequest(ctx, http.MethodGet, a.spotURL, "/api/v3/myTrades", a.spotClock, a.spotLimiter, ps)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		ID       int64  `json:"id"`
		Symbol   string `json:"symbol"`
		IsBuyer  bool   `json:"isBuyer"`
		Price    string `json:"price"`
		Qty      string `json:"qty"`
		QuoteQty string `json:"quoteQty"`
		Time     int64  `json:"time"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(wire))
	for _, t := range wire {
		side := "sell"
		if t.IsBuyer {
			side = "buy"
		}
		trades = append(trades, domain.Trade{
			ID:        strconv.FormatInt(t.ID, 10),
			Symbol:    t.Symbol,
			Side:      side,
			Price:     parseFloat(t.Price),
			Amount:    parseFloat(t.Qty),
			Cost:      parseFloat(t.QuoteQty),
			Timestamp: t.Time,
			Datetime:  isoTime(t.Time),
		})
	}
	return trades, nil
}

// --- Futures ---

// GetFuturesAccount returns the USD-M account summary. Wallet assets with a
// zero balance are dropped.
func (a *BinanceAdapter) GetFuturesAccount(ctx context.Context) (*domain.FuturesAccount, error) {
	resp, err := a.signedRequest(ctx, http.MethodGet, a.futuresURL, "/fapi/v2/account", a.futuresClock, a.futuresLimiter, nil)
	if err != nil {
		return nil, err
	}

	var wire struct {
		TotalWalletBalance         string `json:"totalWalletBalance"`
		TotalUnrealizedProfit      string `json:"totalUnrealizedProfit"`
		TotalMarginBalance         string `json:"totalMarginBalance"`
		AvailableBalance           string `json:"availableBalance"`
		TotalPositionInitialMargin string `json:"totalPositionInitialMargin"`
		Assets                     []struct {
			Asset            string `json:"asset"`
			WalletBalance    string `json:"walletBalance"`
			UnrealizedProfit string `json:"unrealizedProfit"`
			MarginBalance    string `json:"marginBalance"`
			AvailableBalance string `json:"availableBalance"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	account := &domain.FuturesAccount{
		TotalWalletBalance:         parseFloat(wire.TotalWalletBalance),
		TotalUnrealizedProfit:      parseFloat(wire.TotalUnrealizedProfit),
		TotalMarginBalance:         parseFloat(wire.TotalMarginBalance),
		AvailableBalance:           parseFloat(wire.AvailableBalance),
		TotalPositionInitialMargin: parseFloat(wire.TotalPositionInitialMargin),
		Assets:                     []domain.FuturesAsset{},
	}
	for _, asset := range wire.Assets {
		walletBalance := parseFloat(asset.WalletBalance)
		if walletBalance <= 0 {
			continue
		}
		account.Assets = append(account.Assets, domain.FuturesAsset{
			Asset:            asset.Asset,
			WalletBalance:    walletBalance,
			UnrealizedProfit: parseFloat(asset.UnrealizedProfit),
			MarginBalance:    parseFloat(asset.MarginBalance),
			AvailableBalance: parseFloat(asset.AvailableBalance),
		})
	}
	return account, nil
}

type positionRiskWire struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnRealizedProfit string `json:"unRealizedProfit"`
	LiquidationPrice string `json:"liquidationPrice"`
	Leverage         string `json:"leverage"`
	MarginType       string `json:"marginType"`
	IsolatedMargin   string `json:"isolatedMargin"`
	Notional         string `json:"notional"`
}

func (a *BinanceAdapter) getPositionRisk(ctx context.Context) ([]positionRiskWire, error) {
	resp, err := a.signedRequest(ctx, http.MethodGet, a.futuresURL, "/fapi/v2/positionRisk", a.futuresClock, a.futuresLimiter, nil)
	if err != nil {
		return nil, err
	}
	var wire []positionRiskWire
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}
	return wire, nil
}

// GetFuturesPositions fetches position risk and open orders concurrently and
// joins the first opposite-side STOP/STOP_MARKET order per symbol onto the
// position as its stop loss.
func (a *BinanceAdapter) GetFuturesPositions(ctx context.Context) ([]domain.Position, error) {
	var (
		wg        sync.WaitGroup
		raw       []positionRiskWire
		rawErr    error
		orders    []domain.Order
		ordersErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, rawErr = a.getPositionRisk(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, ordersErr = a.GetFuturesOpenOrders(ctx, "")
	}()
	wg.Wait()
	if rawErr != nil {
		return nil, rawErr
	}
	if ordersErr != nil {
		return nil, ordersErr
	}

	stopOrders := make(map[string][]domain.Order)
	for _, o := range orders {
		if o.Type == "stop_market" || o.Type == "stop" {
			stopOrders[o.Symbol] = append(stopOrders[o.Symbol], o)
		}
	}

	positions := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		positionAmt := parseFloat(p.PositionAmt)
		if positionAmt == 0 {
			continue
		}

		side := domain.SideLong
		if positionAmt < 0 {
			side = domain.SideShort
		}
		absAmt := positionAmt
		if absAmt < 0 {
			absAmt = -absAmt
		}

		entryPrice := parseFloat(p.EntryPrice)
		unrealized := parseFloat(p.UnRealizedProfit)
		leverage, _ := strconv.Atoi(p.Leverage)
		isolatedMargin := parseFloat(p.IsolatedMargin)
		notional := parseFloat(p.Notional)
		if notional < 0 {
			notional = -notional
		}

		// ROE against committed margin: isolated margin when set, otherwise
		// the cross-margin equivalent notional/leverage.
		margin := isolatedMargin
		if margin == 0 && leverage != 0 {
			margin = notional / float64(leverage)
		}
		var roe float64
		if margin != 0 {
			roe = unrealized / margin * 100
		}

		var stopPrice, stopValue *float64
		for _, o := range stopOrders[p.Symbol] {
			if (side == domain.SideLong && o.Side == "sell") || (side == domain.SideShort && o.Side == "buy") {
				sp := o.StopPrice
				var sv float64
				if side == domain.SideLong {
					sv = (sp - entryPrice) * absAmt
				} else {
					sv = (entryPrice - sp) * absAmt
				}
				stopPrice, stopValue = &sp, &sv
				break
			}
		}

		positions = append(positions, domain.Position{
			Symbol:           p.Symbol,
			Side:             side,
			PositionAmt:      absAmt,
			EntryPrice:       entryPrice,
			MarkPrice:        parseFloat(p.MarkPrice),
			UnrealizedProfit: unrealized,
			LiquidationPrice: parseFloat(p.LiquidationPrice),
			Leverage:         leverage,
			MarginType:       p.MarginType,
			IsolatedMargin:   isolatedMargin,
			NotionalValue:    notional,
			ROE:              roe,
			StopLossPrice:    stopPrice,
			StopLossValue:    stopValue,
		})
	}
	return positions, nil
}

// GetFuturesOpenOrders returns open futures orders, optionally filtered by
// symbol.
func (a *BinanceAdapter) GetFuturesOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	var ps []param
	if symbol != "" {
		ps = append(ps, param{"symbol", symbol})
	}
	resp, err := a.signedRequest(ctx, http.MethodGet, a.futuresURL, "/fapi/v1/openOrders", a.futuresClock, a.futuresLimiter, ps)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		OrderID      int64  `json:"orderId"`
		Symbol       string `json:"symbol"`
		Side         string `json:"side"`
		PositionSide string `json:"positionSide"`
		Type         string `json:"type"`
		Price        string `json:"price"`
		StopPrice    string `json:"stopPrice"`
		OrigQty      string `json:"origQty"`
		ExecutedQty  string `json:"executedQty"`
		Status       string `json:"status"`
		ReduceOnly   bool   `json:"reduceOnly"`
		Time         int64  `json:"time"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(wire))
	for _, o := range wire {
		origQty := parseFloat(o.OrigQty)
		executedQty := parseFloat(o.ExecutedQty)
		orders = append(orders, domain.Order{
			ID:           strconv.FormatInt(o.OrderID, 10),
			Symbol:       o.Symbol,
			Side:         strings.ToLower(o.Side),
			PositionSide: o.PositionSide,
			Type:         strings.ToLower(o.Type),
			Price:        parseFloat(o.Price),
			StopPrice:    parseFloat(o.StopPrice),
			Amount:       origQty,
			Filled:       executedQty,
			Remaining:    origQty - executedQty,
			Status:       strings.ToLower(o.Status),
			ReduceOnly:   o.ReduceOnly,
			Timestamp:    o.Time,
			Datetime:     isoTime(o.Time),
		})
	}
	return orders, nil
}

// GetFuturesMarkPrices returns the premium index for every futures symbol.
func (a *BinanceAdapter) GetFuturesMarkPrices(ctx context.Context) (map[string]domain.MarkPrice, error) {
	resp, err := a.publicRequest(ctx, a.futuresURL, "/fapi/v1/premiumIndex", a.futuresLimiter, nil)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		Symbol          string `json:"symbol"`
		MarkPrice       string `json:"markPrice"`
		IndexPrice      string `json:"indexPrice"`
		LastFundingRate string `json:"lastFundingRate"`
		NextFundingTime int64  `json:"nextFundingTime"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	prices := make(map[string]domain.MarkPrice, len(wire))
	for _, p := range wire {
		prices[p.Symbol] = domain.MarkPrice{
			MarkPrice:       parseFloat(p.MarkPrice),
			IndexPrice:      parseFloat(p.IndexPrice),
			FundingRate:     parseFloat(p.LastFundingRate),
			NextFundingTime: p.NextFundingTime,
		}
	}
	return prices, nil
}

// GetFuturesIncome returns income history, optionally filtered by income type.
func (a *BinanceAdapter) GetFuturesIncome(ctx context.Context, incomeType string, limit int) ([]domain.IncomeEvent, error) {
	ps := []param{{"limit", strconv.Itoa(limit)}}
	if incomeType != "" {
		ps = append(ps, param{"incomeType", incomeType})
	}
	resp, err := a.signedRequest(ctx, http.MethodGet, a.futuresURL, "/fapi/v1/income", a.futuresClock, a.futuresLimiter, ps)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		Symbol     string `json:"symbol"`
		IncomeType string `json:"incomeType"`
		Income     string `json:"income"`
		Asset      string `json:"asset"`
		Time       int64  `json:"time"`
		TranID     int64  `json:"tranId"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	events := make([]domain.IncomeEvent, 0, len(wire))
	for _, i := range wire {
		id := strconv.FormatInt(i.TranID, 10)
		if i.TranID == 0 {
			id = strconv.FormatInt(i.Time, 10)
		}
		events = append(events, domain.IncomeEvent{
			ID:         id,
			Symbol:     i.Symbol,
			IncomeType: i.IncomeType,
			Income:     parseFloat(i.Income),
			Asset:      i.Asset,
			Timestamp:  i.Time,
			Datetime:   isoTime(i.Time),
		})
	}
	return events, nil
}

// GetFuturesTradeHistory returns realized-PnL income events, newest first.
func (a *BinanceAdapter) GetFuturesTradeHistory(ctx context.Context, limit int) ([]domain.IncomeEvent, error) {
	events, err := a.GetFuturesIncome(ctx, "REALIZED_PNL", limit)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	return events, nil
}

// GetFuturesClosedOrders returns the most recent filled or canceled orders.
// Up to 100 orders are fetched, then filtered, sorted by update time and
// truncated to limit.
func (a *BinanceAdapter) GetFuturesClosedOrders(ctx context.Context, symbol string, limit int) ([]domain.ClosedOrder, error) {
	ps := []param{{"limit", "100"}}
	if symbol != "" {
		ps = append(ps, param{"symbol", symbol})
	}
	resp, err := a.signedRequest(ctx, http.MethodGet, a.futuresURL, "/fapi/v1/allOrders", a.futuresClock, a.futuresLimiter, ps)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		OrderID       int64  `json:"orderId"`
		Symbol        string `json:"symbol"`
		Side          string `json:"side"`
		PositionSide  string `json:"positionSide"`
		Type          string `json:"type"`
		Status        string `json:"status"`
		Price         string `json:"price"`
		AvgPrice      string `json:"avgPrice"`
		OrigQty       string `json:"origQty"`
		ExecutedQty   string `json:"executedQty"`
		ReduceOnly    bool   `json:"reduceOnly"`
		ClosePosition bool   `json:"closePosition"`
		UpdateTime    int64  `json:"updateTime"`
	}
	if err := json.Unmarshal(resp, &wire); err != nil {
		return nil, err
	}

	closed := wire[:0]
	for _, o := range wire {
		if o.Status == "FILLED" || o.Status == "CANCELED" {
			closed = append(closed, o)
		}
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].UpdateTime > closed[j].UpdateTime
	})
	if len(closed) > limit {
		closed = closed[:limit]
	}

	orders := make([]domain.ClosedOrder, 0, len(closed))
	for _, o := range closed {
		price := parseFloat(o.AvgPrice)
		if price == 0 {
			price = parseFloat(o.Price)
		}
		orders = append(orders, domain.ClosedOrder{
			ID:            strconv.FormatInt(o.OrderID, 10),
			Symbol:        o.Symbol,
			Side:          strings.ToLower(o.Side),
			PositionSide:  o.PositionSide,
			Type:          strings.Replace(strings.ToLower(o.Type), "_", " ", 1),
			Status:        strings.ToLower(o.Status),
			Price:         price,
			Quantity:      parseFloat(o.OrigQty),
			ExecutedQty:   parseFloat(o.ExecutedQty),
			ReduceOnly:    o.ReduceOnly,
			ClosePosition: o.ClosePosition,
			Timestamp:     o.UpdateTime,
			Datetime:      isoTime(o.UpdateTime),
		})
	}
	return orders, nil
}

// ClosePosition places a reduce-only market order on the side opposite the
// position. Quantity is trusted as given; the caller passes the absolute
// position size.
func (a *BinanceAdapter) ClosePosition(ctx context.Context, symbol string, side domain.Side, quantity float64) (*domain.OrderResult, error) {
	closeSide := "SELL"
	if side == domain.SideShort {
		closeSide = "BUY"
	}

	ps := []param{
		{"symbol", symbol},
		{"side", closeSide},
		{"type", "MARKET"},
		{"quantity", strconv.FormatFloat(quantity, 'f', -1, 64)},
		{"reduceOnly", "true"},
	}
	resp, err := a.signedRequest(ctx, http.MethodPost, a.futuresURL, "/fapi/v1/order", a.futuresClock, a.futuresLimiter, ps)
	if err != nil {
		if domain.IsPermissionError(err) {
			return nil, domain.ErrTradingPermission
		}
		return nil, err
	}

	var result domain.OrderResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
