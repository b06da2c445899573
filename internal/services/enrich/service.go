// Package enrich attaches live prices to portfolio holdings.
package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/interfaces"
	"github.com/nivesha/advisor/internal/models"
)

// DefaultConcurrency bounds the number of in-flight price lookups.
const DefaultConcurrency = 8

// Service implements EnrichService
type Service struct {
	predictions interfaces.PredictionClient
	logger      *common.Logger
	concurrency int
}

// NewService creates a new enrichment service
func NewService(predictions interfaces.PredictionClient, logger *common.Logger) *Service {
	return &Service{
		predictions: predictions,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// WithConcurrency overrides the lookup concurrency bound and returns the
// service for chaining.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// EnrichHoldings issues one price lookup per holding and joins on the full
// set: it returns only after every lookup has settled. A failed lookup falls
// back to that holding's average price; one bad symbol never fails the batch.
// Output order matches input order.
func (s *Service) EnrichHoldings(ctx context.Context, holdings []models.Holding) []models.Holding {
	if len(holdings) == 0 {
		return holdings
	}

	enriched := make([]models.Holding, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, h := range holdings {
		g.Go(func() error {
			out := h
			pred, err := s.predictions.GetPrediction(gctx, h.Symbol)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("symbol", h.Symbol).
					Msg("Price lookup failed, falling back to average price")
				out.CurrentPrice = h.AveragePrice
			} else {
				out.CurrentPrice = pred.CurrentPrice
				out.Prediction = pred
			}
			enriched[i] = out
			return nil
		})
	}

	// Lookups settle to a value or a fallback, never an error.
	_ = g.Wait()

	return enriched
}

// Ensure Service implements EnrichService
var _ interfaces.EnrichService = (*Service)(nil)
