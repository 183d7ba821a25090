// Package yahoo provides a client for the Yahoo Finance quoteSummary API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

const (
	DefaultBaseURL = "https://query2.finance.yahoo.com"
	DefaultTimeout = 10 * time.Second

	// NSE-listed tickers are queried with the .NS suffix; this client is
	// the primary (Indian-market) lookup source.
	nseSuffix = ".NS"
)

// Client implements the MarketClient interface against Yahoo Finance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
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

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE    *rawValue `json:"trailingPE"`
				ForwardPE     *rawValue `json:"forwardPE"`
				MarketCap     *rawValue `json:"marketCap"`
				DividendYield *rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				TrailingEps *rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// GetOverview retrieves headline metrics for a ticker, normalizing to the
// .NS suffix. Returns (nil, nil) when Yahoo has no usable record (no name).
func (c *Client) GetOverview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if !strings.HasSuffix(symbol, nseSuffix) {
		symbol += nseSuffix
	}

	params := url.Values{}
	params.Set("modules", "price,summaryDetail,defaultKeyStatistics")
	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("symbol", symbol).Msg("Yahoo Finance quoteSummary request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Yahoo answers 404 for unknown symbols; treat as no record, not an error.
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance error: status %d: %s", resp.StatusCode, string(body))
	}

	var qs quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if qs.QuoteSummary.Error != nil || len(qs.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	result := qs.QuoteSummary.Result[0]
	name := ""
	if result.Price != nil {
		name = result.Price.LongName
		if name == "" {
			name = result.Price.ShortName
		}
	}
	if name == "" {
		c.logger.Debug().Str("symbol", symbol).Msg("No usable Yahoo record")
		return nil, nil
	}

	metrics := models.NewCompetitorMetrics()
	metrics.Name = name

	if sd := result.SummaryDetail; sd != nil {
		if v := pickRaw(sd.TrailingPE, sd.ForwardPE); v != nil {
			metrics.PERatio = formatMetric(*v)
		}
		if sd.MarketCap != nil && sd.MarketCap.Raw != nil {
			metrics.MarketCap = formatMetric(*sd.MarketCap.Raw)
		}
		if sd.DividendYield != nil && sd.DividendYield.Raw != nil {
			metrics.DividendYield = formatMetric(*sd.DividendYield.Raw)
		}
	}
	if ks := result.DefaultKeyStatistics; ks != nil && ks.TrailingEps != nil && ks.TrailingEps.Raw != nil {
		metrics.EPS = formatMetric(*ks.TrailingEps.Raw)
	}

	c.logger.Debug().Str("symbol", symbol).Str("name", name).Msg("Yahoo Finance overview fetched")
	return metrics, nil
}

// pickRaw returns the first wrapper carrying a raw value.
func pickRaw(values ...*rawValue) *float64 {
	for _, v := range values {
		if v != nil && v.Raw != nil {
			return v.Raw
		}
	}
	return nil
}

// formatMetric renders a numeric metric without exponent notation.
func formatMetric(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Ensure Client implements MarketClient
var _ interfaces.MarketClient = (*Client)(nil)
