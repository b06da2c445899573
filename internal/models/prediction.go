// Package models defines domain and wire types for the advisor gateway
package models

// Signal is the quantitative model's directional call for a symbol.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalHold    Signal = "HOLD"
	SignalNeutral Signal = "NEUTRAL"
)

// Forecast holds the model's directional call and price target.
type Forecast struct {
	Signal      Signal  `json:"signal"`
	TargetPrice float64 `json:"target_price"`
}

// Prediction is a point prediction for a symbol as served by the ML engine.
// It is request-scoped and immutable once returned.
type Prediction struct {
	Symbol       string   `json:"symbol"`
	CurrentPrice float64  `json:"current_price"`
	Forecast     Forecast `json:"prediction"`
}
