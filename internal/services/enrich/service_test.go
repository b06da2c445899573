package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/models"
)

// slowPredictions serves a fixed price per symbol after a delay, and fails
// for symbols listed in failing.
type slowPredictions struct {
	delay   time.Duration
	prices  map[string]float64
	failing map[string]bool
}

func (f *slowPredictions) GetPrediction(ctx context.Context, symbol string) (*models.Prediction, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.failing[symbol] {
		return nil, errors.New("lookup failed")
	}
	return &models.Prediction{
		Symbol:       symbol,
		CurrentPrice: f.prices[symbol],
		Forecast:     models.Forecast{Signal: models.SignalHold, TargetPrice: f.prices[symbol]},
	}, nil
}

func (f *slowPredictions) GetPredictionWithFallback(ctx context.Context, symbol string) *models.Prediction {
	pred, err := f.GetPrediction(ctx, symbol)
	if err != nil {
		return &models.Prediction{Symbol: symbol, CurrentPrice: 150, Forecast: models.Forecast{Signal: models.SignalNeutral, TargetPrice: 150}}
	}
	return pred
}

func holdings() []models.Holding {
	return []models.Holding{
		{Symbol: "TCS", Quantity: 20, AveragePrice: 3400},
		{Symbol: "BAD", Quantity: 5, AveragePrice: 99},
		{Symbol: "INFY", Quantity: 10, AveragePrice: 1500},
		{Symbol: "AAPL", Quantity: 3, AveragePrice: 170},
	}
}

func TestEnrichHoldings_IsolatesPerItemFailure(t *testing.T) {
	fake := &slowPredictions{
		prices:  map[string]float64{"TCS": 3600, "INFY": 1550, "AAPL": 180},
		failing: map[string]bool{"BAD": true},
	}
	svc := NewService(fake, common.NewSilentLogger())

	result := svc.EnrichHoldings(context.Background(), holdings())
	require.Len(t, result, 4)

	// Order matches input order.
	assert.Equal(t, "TCS", result[0].Symbol)
	assert.Equal(t, "BAD", result[1].Symbol)
	assert.Equal(t, "INFY", result[2].Symbol)
	assert.Equal(t, "AAPL", result[3].Symbol)

	// The failing holding falls back to its own average price; the rest of
	// the batch is unaffected.
	assert.Equal(t, 3600.0, result[0].CurrentPrice)
	assert.Equal(t, 99.0, result[1].CurrentPrice)
	assert.Nil(t, result[1].Prediction)
	assert.Equal(t, 1550.0, result[2].CurrentPrice)
	assert.Equal(t, 180.0, result[3].CurrentPrice)
	require.NotNil(t, result[0].Prediction)
	assert.Equal(t, models.SignalHold, result[0].Prediction.Forecast.Signal)
}

func TestEnrichHoldings_RunsConcurrently(t *testing.T) {
	fake := &slowPredictions{
		delay:  100 * time.Millisecond,
		prices: map[string]float64{"TCS": 3600, "INFY": 1550, "AAPL": 180},
		failing: map[string]bool{
			"BAD": true,
		},
	}
	svc := NewService(fake, common.NewSilentLogger())

	start := time.Now()
	result := svc.EnrichHoldings(context.Background(), holdings())
	elapsed := time.Since(start)

	require.Len(t, result, 4)
	// Four serial lookups would take >=400ms; a full concurrent join is
	// bounded by the slowest single lookup.
	assert.Less(t, elapsed, 250*time.Millisecond, "lookups must fan out, not run serially")
}

func TestEnrichHoldings_EmptyInput(t *testing.T) {
	svc := NewService(&slowPredictions{}, common.NewSilentLogger())
	assert.Empty(t, svc.EnrichHoldings(context.Background(), nil))
}

func TestEnrichHoldings_DoesNotMutateInput(t *testing.T) {
	fake := &slowPredictions{prices: map[string]float64{"TCS": 3600}}
	svc := NewService(fake, common.NewSilentLogger())

	input := []models.Holding{{Symbol: "TCS", Quantity: 20, AveragePrice: 3400}}
	_ = svc.EnrichHoldings(context.Background(), input)

	assert.Zero(t, input[0].CurrentPrice, "enrichment attaches to the result, not the input")
}
