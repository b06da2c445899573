package interfaces

import (
	"context"

	"github.com/nivesha/advisor/internal/models"
)

// AdvisorService produces investor-facing analysis and chat replies
type AdvisorService interface {
	// Analyze generates an analysis for a symbol. It degrades through three
	// tiers (live, mock, templated fallback) and only fails on unrecognized
	// generator faults.
	Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error)

	// Chat answers a conversational message with the caller's portfolio
	// context injected. token may be empty.
	Chat(ctx context.Context, message, token string) (*models.ChatReply, error)

	// BuildContext renders the caller's holdings into a one-line context
	// string. It never fails; failures yield fixed sentinel strings.
	BuildContext(ctx context.Context, token string) string
}

// EnrichService attaches current prices to holdings
type EnrichService interface {
	// EnrichHoldings fetches a current price for every holding concurrently.
	// The result has the same length and order as the input; a failed lookup
	// falls back to that holding's average price and never fails the batch.
	EnrichHoldings(ctx context.Context, holdings []models.Holding) []models.Holding
}
