package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverview_ParsesMetrics(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"function": r.URL.Query().Get("function"),
			"symbol":   r.URL.Query().Get("symbol"),
			"apikey":   r.URL.Query().Get("apikey"),
		}
		w.Write([]byte(`{
			"Symbol": "AAPL",
			"Name": "Apple Inc",
			"PERatio": "29.5",
			"MarketCapitalization": "2800000000000",
			"EPS": "6.42",
			"DividendYield": "0.0055"
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	metrics, err := c.GetOverview(context.Background(), "aapl")
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.Equal(t, "OVERVIEW", gotQuery["function"])
	assert.Equal(t, "AAPL", gotQuery["symbol"])
	assert.Equal(t, "test-key", gotQuery["apikey"])

	assert.Equal(t, "Apple Inc", metrics.Name)
	assert.Equal(t, "29.5", metrics.PERatio)
	assert.Equal(t, "2800000000000", metrics.MarketCap)
	assert.Equal(t, "6.42", metrics.EPS)
	assert.Equal(t, "0.0055", metrics.DividendYield)
}

func TestGetOverview_NoneFieldsStayUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Name": "Sparse Co", "PERatio": "None", "EPS": ""}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	metrics, err := c.GetOverview(context.Background(), "SPRS")
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.Equal(t, "Sparse Co", metrics.Name)
	assert.Equal(t, "N/A", metrics.PERatio)
	assert.Equal(t, "N/A", metrics.EPS)
	assert.Equal(t, "N/A", metrics.MarketCap)
}

func TestGetOverview_RateLimitNoteIsNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	metrics, err := c.GetOverview(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestGetOverview_EmptyObjectIsNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	metrics, err := c.GetOverview(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestGetOverview_HTTPErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.GetOverview(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
