package domain

// CompletedTrade is one finished step of the compounding plan.
type CompletedTrade struct {
	Trade        int     `json:"trade"`
	StartBalance float64 `json:"startBalance"`
	EndBalance   float64 `json:"endBalance"`
	Profit       float64 `json:"profit"`
	CompletedAt  string  `json:"completedAt"`
}

// GoalDocument is the single operator-maintained compounding-goal document.
// Writes replace the whole document; last writer wins.
type GoalDocument struct {
	StartingBalance *float64         `json:"startingBalance"`
	CompletedTrades []CompletedTrade `json:"completedTrades"`
	UpdatedAt       string           `json:"updatedAt,omitempty"`
}

// DefaultGoalDocument is returned when no document has been stored yet.
func DefaultGoalDocument() *GoalDocument {
	return &GoalDocument{
		StartingBalance: nil,
		CompletedTrades: []CompletedTrade{},
	}
}
