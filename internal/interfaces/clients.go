// Package interfaces defines client and service contracts for the advisor gateway
package interfaces

import (
	"context"

	"github.com/nivesha/advisor/internal/models"
)

// PredictionClient provides access to the ML prediction engine
type PredictionClient interface {
	// GetPrediction retrieves a point prediction for a symbol
	GetPrediction(ctx context.Context, symbol string) (*models.Prediction, error)

	// GetPredictionWithFallback never fails: on any upstream failure it logs
	// and returns a synthetic NEUTRAL prediction at the baseline price
	GetPredictionWithFallback(ctx context.Context, symbol string) *models.Prediction
}

// GenerativeClient provides access to the generative-text service
type GenerativeClient interface {
	// GenerateContent generates advisory text from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Chat generates a reply to message with a system turn injected ahead of
	// the user's message
	Chat(ctx context.Context, system, message string) (string, error)
}

// PortfolioClient provides access to the core portfolio service using the
// caller's bearer credential
type PortfolioClient interface {
	// GetPortfolio retrieves the caller's holdings
	GetPortfolio(ctx context.Context, token string) (*models.Portfolio, error)

	// AddHolding appends or merges a holding
	AddHolding(ctx context.Context, token string, req models.AddHoldingRequest) error
}
