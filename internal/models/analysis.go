package models

// TradeAction is the action carried by a trade directive.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
	ActionHold TradeAction = "HOLD"
)

// TradeDirective is the structured trade instruction embedded in generated
// text. Only BUY and SELL are actionable; HOLD tags are informational and are
// never decoded into a directive.
type TradeDirective struct {
	Action   TradeAction `json:"action"`
	Symbol   string      `json:"symbol"`
	Quantity int         `json:"quantity"`
}

// AnalysisResult is the gateway response for a symbol analysis. Analysis
// retains the raw generated text (directive tag included); Directive is the
// parsed structured form, nil when the text carries no actionable directive.
type AnalysisResult struct {
	Symbol    string          `json:"symbol"`
	MLData    *Prediction     `json:"ml_data"`
	Analysis  string          `json:"analysis"`
	Directive *TradeDirective `json:"directive,omitempty"`
}

// ChatReply is the gateway response for a conversational turn.
type ChatReply struct {
	Reply     string          `json:"reply"`
	Directive *TradeDirective `json:"directive,omitempty"`
}
