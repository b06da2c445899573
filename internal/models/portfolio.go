package models

// Holding is a position in the user's portfolio as served by the core
// portfolio service. CurrentPrice and Prediction are per-request enrichments
// and are never written back.
type Holding struct {
	Symbol       string      `json:"symbol"`
	Quantity     float64     `json:"quantity"` // negative represents a reduction
	AveragePrice float64     `json:"avgPrice"`
	CurrentPrice float64     `json:"currentPrice,omitempty"`
	Prediction   *Prediction `json:"prediction,omitempty"`
}

// Portfolio is the holdings collection returned by the core portfolio service.
type Portfolio struct {
	Holdings []Holding `json:"holdings"`
}

// AddHoldingRequest is the payload for appending or merging a holding.
// A SELL is posted as a negative quantity.
type AddHoldingRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgPrice float64 `json:"avgPrice"`
}
