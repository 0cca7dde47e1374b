package domain

// Balance is a single spot asset balance. Only assets with Total > 0 are kept.
type Balance struct {
	Free  float64 `json:"free"`
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
}

// Holding is a spot balance valued in USD.
type Holding struct {
	Currency   string  `json:"currency"`
	Amount     float64 `json:"amount"`
	Free       float64 `json:"free"`
	Used       float64 `json:"used"`
	Price      float64 `json:"price"`
	ValueUSD   float64 `json:"valueUSD"`
	Change24h  float64 `json:"change24h"`
	Allocation float64 `json:"allocation"`
}

// Portfolio is the valued spot account: holdings sorted descending by ValueUSD.
type Portfolio struct {
	TotalValue float64   `json:"totalValue"`
	Holdings   []Holding `json:"holdings"`
}

// FuturesAsset is one asset on the futures wallet.
type FuturesAsset struct {
	Asset            string  `json:"asset"`
	WalletBalance    float64 `json:"walletBalance"`
	UnrealizedProfit float64 `json:"unrealizedProfit"`
	MarginBalance    float64 `json:"marginBalance"`
	AvailableBalance float64 `json:"availableBalance"`
}

// FuturesAccount is the USD-M futures account summary.
type FuturesAccount struct {
	TotalWalletBalance         float64        `json:"totalWalletBalance"`
	TotalUnrealizedProfit      float64        `json:"totalUnrealizedProfit"`
	TotalMarginBalance         float64        `json:"totalMarginBalance"`
	AvailableBalance           float64        `json:"availableBalance"`
	TotalPositionInitialMargin float64        `json:"totalPositionInitialMargin"`
	Assets                     []FuturesAsset `json:"assets"`
}

// Ticker is a 24h price snapshot for one symbol.
type Ticker struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	High24h   float64 `json:"high24h"`
	Low24h    float64 `json:"low24h"`
	Volume24h float64 `json:"volume24h"`
}

// MarkPrice is the futures premium-index snapshot for one symbol.
type MarkPrice struct {
	MarkPrice       float64 `json:"markPrice"`
	IndexPrice      float64 `json:"indexPrice"`
	FundingRate     float64 `json:"fundingRate"`
	NextFundingTime int64   `json:"nextFundingTime"`
}
