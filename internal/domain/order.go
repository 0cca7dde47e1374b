package domain

// Order is an open order. Spot and futures share the shape; PositionSide,
// StopPrice and ReduceOnly are only populated for futures orders.
type Order struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	PositionSide string  `json:"positionSide,omitempty"`
	Type         string  `json:"type"`
	Price        float64 `json:"price"`
	StopPrice    float64 `json:"stopPrice,omitempty"`
	Amount       float64 `json:"amount"`
	Filled       float64 `json:"filled"`
	Remaining    float64 `json:"remaining"`
	Status       string  `json:"status"`
	ReduceOnly   bool    `json:"reduceOnly,omitempty"`
	Timestamp    int64   `json:"timestamp"`
	Datetime     string  `json:"datetime"`
}

// ClosedOrder is a filled or canceled futures order from order history.
type ClosedOrder struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Side          string  `json:"side"`
	PositionSide  string  `json:"positionSide"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	Quantity      float64 `json:"quantity"`
	ExecutedQty   float64 `json:"executedQty"`
	ReduceOnly    bool    `json:"reduceOnly"`
	ClosePosition bool    `json:"closePosition"`
	Timestamp     int64   `json:"timestamp"`
	Datetime      string  `json:"datetime"`
}

// Trade is an executed spot trade of the account.
type Trade struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	Cost      float64 `json:"cost"`
	Timestamp int64   `json:"timestamp"`
	Datetime  string  `json:"datetime"`
}

// IncomeEvent is one entry from the futures income history.
type IncomeEvent struct {
	ID         string  `json:"id,omitempty"`
	Symbol     string  `json:"symbol"`
	IncomeType string  `json:"incomeType"`
	Income     float64 `json:"income"`
	Asset      string  `json:"asset"`
	Timestamp  int64   `json:"timestamp"`
	Datetime   string  `json:"datetime"`
}

// OrderResult is the exchange acknowledgement of a placed order.
type OrderResult struct {
	OrderID       int64  `json:"orderId"`
	Symbol        string `json:"symbol"`
	Status        string `json:"status"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	AvgPrice      string `json:"avgPrice"`
	ReduceOnly    bool   `json:"reduceOnly"`
	ClientOrderID string `json:"clientOrderId"`
	UpdateTime    int64  `json:"updateTime"`
}
