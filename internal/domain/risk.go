package domain

// RiskMetrics are derived spot portfolio metrics. Numeric fields are
// fixed-decimal strings per the dashboard display contract.
type RiskMetrics struct {
	DiversificationScore string `json:"diversificationScore"`
	LargestPosition      string `json:"largestPosition"`
	VolatilityExposure   string `json:"volatilityExposure"`
	StablecoinRatio      string `json:"stablecoinRatio"`
	RiskLevel            string `json:"riskLevel"`
}

// FuturesRiskMetrics are derived futures exposure metrics.
type FuturesRiskMetrics struct {
	TotalPnL        string `json:"totalPnL"`
	TotalPnLPercent string `json:"totalPnLPercent"`
	MaxLeverage     int    `json:"maxLeverage"`
	AvgLeverage     string `json:"avgLeverage"`
	MarginUsage     string `json:"marginUsage"`
	PositionCount   int    `json:"positionCount"`
	LongExposure    string `json:"longExposure"`
	ShortExposure   string `json:"shortExposure"`
	TotalNotional   string `json:"totalNotional"`
	RiskLevel       string `json:"riskLevel"`
}
