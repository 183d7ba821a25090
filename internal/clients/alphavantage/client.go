// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketClient interface against the Alpha Vantage
// OVERVIEW endpoint. It is the secondary (global/US) lookup source.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
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

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// overviewResponse is the flat OVERVIEW payload. Alpha Vantage returns every
// field as a string; rate-limit replies come back as Note/Information keys.
type overviewResponse struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	PERatio              string `json:"PERatio"`
	MarketCapitalization string `json:"MarketCapitalization"`
	EPS                  string `json:"EPS"`
	DividendYield        string `json:"DividendYield"`
	Note                 string `json:"Note"`
	Information          string `json:"Information"`
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("function", params.Get("function")).Str("symbol", params.Get("symbol")).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/query",
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetOverview retrieves company overview metrics for a ticker.
// Returns (nil, nil) when the response is empty, rate-limited, or has no name.
func (c *Client) GetOverview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)

	var overview overviewResponse
	if err := c.get(ctx, params, &overview); err != nil {
		return nil, err
	}

	if overview.Note != "" || overview.Information != "" {
		c.logger.Debug().Str("symbol", symbol).Msg("Alpha Vantage rate-limited or informational response")
		return nil, nil
	}
	if overview.Name == "" {
		return nil, nil
	}

	metrics := models.NewCompetitorMetrics()
	metrics.Name = overview.Name
	if overview.PERatio != "" && overview.PERatio != "None" {
		metrics.PERatio = overview.PERatio
	}
	if overview.MarketCapitalization != "" && overview.MarketCapitalization != "None" {
		metrics.MarketCap = overview.MarketCapitalization
	}
	if overview.EPS != "" && overview.EPS != "None" {
		metrics.EPS = overview.EPS
	}
	if overview.DividendYield != "" && overview.DividendYield != "None" {
		metrics.DividendYield = overview.DividendYield
	}

	c.logger.Debug().Str("symbol", symbol).Str("name", metrics.Name).Msg("Alpha Vantage overview fetched")
	return metrics, nil
}

// Ensure Client implements MarketClient
var _ interfaces.MarketClient = (*Client)(nil)
