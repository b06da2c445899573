package advisor

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/nivesha/advisor/internal/models"
)

// Sentinel context strings. Each failure mode yields a fixed, readable line
// rather than an error.
const (
	contextNoData      = "No portfolio data found."
	contextUnavailable = "Portfolio data is currently unavailable."
	contextEmpty       = "Portfolio is currently empty."
)

// BuildContext renders the caller's holdings into the single line consumed by
// the chat system prompt. It is rebuilt on every conversational turn, never
// cached, and never fails.
func (s *Service) BuildContext(ctx context.Context, token string) string {
	if token == "" || s.portfolio == nil {
		return contextNoData
	}

	pf, err := s.portfolio.GetPortfolio(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Portfolio fetch failed, chat context degraded")
		return contextUnavailable
	}

	if pf == nil || len(pf.Holdings) == 0 {
		return contextEmpty
	}

	parts := lo.Map(pf.Holdings, func(h models.Holding, _ int) string {
		return h.Symbol + "(" + formatAmount(h.Quantity) + "@$" + formatAmount(h.AveragePrice) + ")"
	})

	return "Current Portfolio: " + strings.Join(parts, ", ")
}

// formatAmount renders a number without trailing zeros (20, not 20.00).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
