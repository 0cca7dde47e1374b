package domain

type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Position is an open futures position joined with its stop-loss order, if any.
// PositionAmt is always the absolute size; Side carries the direction.
type Position struct {
	Symbol           string   `json:"symbol"`
	Side             Side     `json:"side"`
	PositionAmt      float64  `json:"positionAmt"`
	EntryPrice       float64  `json:"entryPrice"`
	MarkPrice        float64  `json:"markPrice"`
	UnrealizedProfit float64  `json:"unrealizedProfit"`
	LiquidationPrice float64  `json:"liquidationPrice"`
	Leverage         int      `json:"leverage"`
	MarginType       string   `json:"marginType"`
	IsolatedMargin   float64  `json:"isolatedMargin"`
	NotionalValue    float64  `json:"notionalValue"`
	ROE              float64  `json:"roe"`
	StopLossPrice    *float64 `json:"stopLossPrice"`
	StopLossValue    *float64 `json:"stopLossValue"`
}
