package mlengine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesha/advisor/internal/models"
)

func TestGetPrediction_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol":"AAPL","current_price":178.5,"prediction":{"signal":"BUY","target_price":195.0}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	pred, err := client.GetPrediction(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", pred.Symbol)
	assert.Equal(t, 178.5, pred.CurrentPrice)
	assert.Equal(t, models.SignalBuy, pred.Forecast.Signal)
	assert.Equal(t, 195.0, pred.Forecast.TargetPrice)
}

func TestGetPrediction_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetryInterval(time.Millisecond))
	_, err := client.GetPrediction(context.Background(), "NOPE")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetPrediction_ServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "engine overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetryInterval(time.Millisecond))
	_, err := client.GetPrediction(context.Background(), "AAPL")
	require.Error(t, err)

	// Initial attempt plus maxRetries.
	assert.Equal(t, int32(maxRetries+1), calls.Load())
}

func TestGetPrediction_RecoversOnRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"symbol":"TCS","current_price":3400,"prediction":{"signal":"HOLD","target_price":3500}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetryInterval(time.Millisecond))
	pred, err := client.GetPrediction(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, 3400.0, pred.CurrentPrice)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetPrediction_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetryInterval(time.Millisecond))
	_, err := client.GetPrediction(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestGetPredictionWithFallback_IsTotal(t *testing.T) {
	// Unreachable upstream: the server is closed before the call.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetryInterval(time.Millisecond))
	pred := client.GetPredictionWithFallback(context.Background(), "aapl")

	require.NotNil(t, pred)
	assert.Equal(t, "AAPL", pred.Symbol)
	assert.Equal(t, BaselinePrice, pred.CurrentPrice)
	assert.Equal(t, models.SignalNeutral, pred.Forecast.Signal)
	assert.Equal(t, BaselinePrice, pred.Forecast.TargetPrice)
}

func TestGetPredictionWithFallback_PassesThroughOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"INFY","current_price":1500,"prediction":{"signal":"SELL","target_price":1400}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	pred := client.GetPredictionWithFallback(context.Background(), "INFY")
	assert.Equal(t, models.SignalSell, pred.Forecast.Signal)
	assert.Equal(t, 1500.0, pred.CurrentPrice)
}
