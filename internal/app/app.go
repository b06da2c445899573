// Package app wires configuration, clients, and services for the gateway
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nivesha/advisor/internal/clients/gemini"
	"github.com/nivesha/advisor/internal/clients/mlengine"
	"github.com/nivesha/advisor/internal/clients/portfolio"
	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/interfaces"
	"github.com/nivesha/advisor/internal/services/advisor"
	"github.com/nivesha/advisor/internal/services/enrich"
)

// App holds all initialized clients and services.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Predictions interfaces.PredictionClient
	Portfolio   interfaces.PortfolioClient
	Generative  interfaces.GenerativeClient // nil without a credential
	Advisor     interfaces.AdvisorService
	Enricher    interfaces.EnrichService
	StartupTime time.Time
}

// NewApp initializes configuration, clients, and services.
// configPath may be empty, in which case defaults plus environment overrides apply.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	predictions := mlengine.NewClient(
		mlengine.WithBaseURL(config.Clients.MLEngine.BaseURL),
		mlengine.WithTimeout(config.Clients.MLEngine.GetTimeout()),
		mlengine.WithRateLimit(config.Clients.MLEngine.RateLimit),
		mlengine.WithLogger(logger),
	)

	portfolioClient := portfolio.NewClient(
		portfolio.WithBaseURL(config.Clients.Portfolio.BaseURL),
		portfolio.WithTimeout(config.Clients.Portfolio.GetTimeout()),
		portfolio.WithRateLimit(config.Clients.Portfolio.RateLimit),
		portfolio.WithLogger(logger),
	)

	// Credential presence is the sole switch between the live and mock tiers.
	var generative interfaces.GenerativeClient
	if config.Clients.Gemini.HasCredential() {
		gc, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client init failed - mock tier will serve analysis")
		} else {
			generative = gc
		}
	} else {
		logger.Info().Msg("No Gemini credential configured - mock tier will serve analysis")
	}

	return &App{
		Config:      config,
		Logger:      logger,
		Predictions: predictions,
		Portfolio:   portfolioClient,
		Generative:  generative,
		Advisor:     advisor.NewService(predictions, portfolioClient, generative, logger),
		Enricher:    enrich.NewService(predictions, logger),
		StartupTime: time.Now(),
	}, nil
}
