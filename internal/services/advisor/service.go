// Package advisor produces investor-facing analysis by fusing the ML
// prediction feed, the generative-text service, and the caller's holdings.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/directive"
	"github.com/nivesha/advisor/internal/interfaces"
	"github.com/nivesha/advisor/internal/models"
)

// Service implements AdvisorService
type Service struct {
	predictions interfaces.PredictionClient
	portfolio   interfaces.PortfolioClient
	generative  interfaces.GenerativeClient // nil when no credential is configured
	logger      *common.Logger
}

// NewService creates a new advisor service. generative may be nil, in which
// case the mock tier serves all analysis and chat replies.
func NewService(
	predictions interfaces.PredictionClient,
	portfolio interfaces.PortfolioClient,
	generative interfaces.GenerativeClient,
	logger *common.Logger,
) *Service {
	return &Service{
		predictions: predictions,
		portfolio:   portfolio,
		generative:  generative,
		logger:      logger,
	}
}

// tier is one narrative strategy. Tiers are tried in order; a tier either
// declines (available returns false), succeeds, or fails with an error the
// next tier may recover from. There is no retry within a tier.
type tier struct {
	name      string
	available func() bool
	generate  func(ctx context.Context, p *models.Prediction) (string, error)
}

func (s *Service) tiers() []tier {
	return []tier{
		{
			name:      "live",
			available: func() bool { return s.generative != nil },
			generate: func(ctx context.Context, p *models.Prediction) (string, error) {
				return s.generative.GenerateContent(ctx, buildAnalysisPrompt(p))
			},
		},
		{
			name:      "mock",
			available: func() bool { return s.generative == nil },
			generate: func(_ context.Context, p *models.Prediction) (string, error) {
				return mockNarrative(p), nil
			},
		},
		{
			name:      "fallback",
			available: func() bool { return true },
			generate: func(_ context.Context, p *models.Prediction) (string, error) {
				return fallbackNarrative(p), nil
			},
		},
	}
}

// Analyze generates an analysis for a symbol. The prediction is always
// structurally valid (baseline fallback on upstream failure); the narrative
// degrades live -> mock -> templated fallback. Only an unrecognized live-tier
// fault reaches the caller.
func (s *Service) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	pred := s.predictions.GetPredictionWithFallback(ctx, symbol)

	var text string
	for _, t := range s.tiers() {
		if !t.available() {
			continue
		}

		out, err := t.generate(ctx, pred)
		if err == nil {
			text = out
			break
		}

		if !isProviderFault(err) {
			return nil, fmt.Errorf("narrative generation failed: %w", err)
		}

		s.logger.Warn().
			Err(err).
			Str("tier", t.name).
			Str("symbol", symbol).
			Msg("Narrative tier failed, degrading to next tier")
	}

	result := &models.AnalysisResult{
		Symbol:   symbol,
		MLData:   pred,
		Analysis: text,
	}
	if d, ok := directive.Parse(text); ok {
		result.Directive = d
	}

	return result, nil
}

// Chat answers a conversational message. The caller's portfolio context is
// rebuilt fresh for every turn and injected as a system turn ahead of the
// user's message.
func (s *Service) Chat(ctx context.Context, message, token string) (*models.ChatReply, error) {
	portfolioContext := s.BuildContext(ctx, token)

	if s.generative == nil {
		reply := fmt.Sprintf(
			"I am a mock Nivesha advisor running without a generative credential. %s Set GEMINI_API_KEY to get live responses.",
			portfolioContext,
		)
		return &models.ChatReply{Reply: reply}, nil
	}

	reply, err := s.generative.Chat(ctx, buildChatSystemPrompt(portfolioContext), message)
	if err != nil {
		return nil, fmt.Errorf("chat generation failed: %w", err)
	}

	result := &models.ChatReply{Reply: reply}
	if d, ok := directive.Parse(reply); ok {
		result.Directive = d
	}

	return result, nil
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
