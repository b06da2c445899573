// Package mlengine provides a client for the quantitative prediction service
package mlengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/interfaces"
	"github.com/nivesha/advisor/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second

	// BaselinePrice is the synthetic price served when the engine is
	// unreachable. Both current and target price use it so the fallback
	// prediction reads as flat.
	BaselinePrice = 150.00

	maxRetries           = 2
	defaultRetryInterval = 250 * time.Millisecond
)

// Client implements the PredictionClient interface
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *common.Logger
	limiter       *rate.Limiter
	retryInterval time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryInterval sets the initial backoff interval between retries
func WithRetryInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.retryInterval = interval
	}
}

// NewClient creates a new prediction service client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:       rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:        common.NewSilentLogger(),
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a prediction service error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ML engine error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", path).Msg("ML engine request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetPrediction retrieves a point prediction for a symbol. Transient failures
// (network errors and 5xx) are retried with bounded exponential backoff;
// other upstream errors return immediately.
func (c *Client) GetPrediction(ctx context.Context, symbol string) (*models.Prediction, error) {
	endpoint := "/predict/" + url.PathEscape(strings.ToUpper(symbol))

	var pred models.Prediction
	op := func() error {
		if err := c.get(ctx, endpoint, &pred); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	return &pred, nil
}

// GetPredictionWithFallback is the total form of GetPrediction: on any
// failure it logs and returns a synthetic NEUTRAL prediction at the baseline
// price, so callers always receive a structurally valid prediction.
func (c *Client) GetPredictionWithFallback(ctx context.Context, symbol string) *models.Prediction {
	pred, err := c.GetPrediction(ctx, symbol)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("symbol", symbol).
			Msg("ML engine unavailable, serving baseline prediction")
		return &models.Prediction{
			Symbol:       strings.ToUpper(symbol),
			CurrentPrice: BaselinePrice,
			Forecast: models.Forecast{
				Signal:      models.SignalNeutral,
				TargetPrice: BaselinePrice,
			},
		}
	}
	return pred
}

// Ensure Client implements PredictionClient
var _ interfaces.PredictionClient = (*Client)(nil)
