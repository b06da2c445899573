package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesha/advisor/internal/models"
)

func TestGetPortfolio_SendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"holdings":[{"symbol":"TCS","quantity":20,"avgPrice":3400},{"symbol":"INFY","quantity":10,"avgPrice":1500}]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	pf, err := client.GetPortfolio(context.Background(), "user-token")
	require.NoError(t, err)

	require.Len(t, pf.Holdings, 2)
	assert.Equal(t, "TCS", pf.Holdings[0].Symbol)
	assert.Equal(t, 20.0, pf.Holdings[0].Quantity)
	assert.Equal(t, 3400.0, pf.Holdings[0].AveragePrice)
	assert.Zero(t, pf.Holdings[0].CurrentPrice)
}

func TestGetPortfolio_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPortfolio(context.Background(), "expired")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAddHolding_PostsPayload(t *testing.T) {
	var received models.AddHoldingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/portfolio/add", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	err := client.AddHolding(context.Background(), "user-token", models.AddHoldingRequest{
		Symbol:   "AAPL",
		Quantity: -5, // a SELL posts a negative quantity
		AvgPrice: 178.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", received.Symbol)
	assert.Equal(t, -5.0, received.Quantity)
	assert.Equal(t, 178.5, received.AvgPrice)
}
