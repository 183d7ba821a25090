// Package models defines data structures for Finsight
package models

import (
	"errors"
	"time"
)

// UnknownTicker is the sentinel used when entity extraction cannot identify
// the issuing company.
const UnknownTicker = "UNKNOWN"

// ErrReportNotFound is returned when a report id does not exist in the store.
var ErrReportNotFound = errors.New("report not found")

// Report is the persisted result of analyzing one uploaded document.
// It is created once per pipeline run and immutable after persistence.
type Report struct {
	ID      string `json:"id"`
	Ticker  string `json:"ticker"`
	Summary string `json:"summary"`

	// Competitors and CompetitorRows are index-aligned: one row per
	// competitor ticker, in extraction order. A nil Metrics marks a
	// failed lookup for that ticker, not a failed report.
	Competitors    []string        `json:"competitors"`
	CompetitorRows []CompetitorRow `json:"competitor_rows"`

	// ChartFilename is a path relative to the static asset root
	// ("charts/<ticker>_revenue_chart.png"), empty when no chart was produced.
	ChartFilename string `json:"chart_filename"`

	// DocumentText is the storage-budgeted extract of the document text,
	// never the literal full text for large documents.
	DocumentText string `json:"document_text"`

	CreatedAt time.Time `json:"created_at"`
}

// CompetitorRow pairs a competitor ticker with its fetched metrics.
type CompetitorRow struct {
	Ticker  string             `json:"ticker"`
	Metrics *CompetitorMetrics `json:"metrics"`
}

// MetricUnavailable marks a metric field the market data sources could not provide.
const MetricUnavailable = "N/A"

// CompetitorMetrics is a flat set of headline financial fields for one company.
// Each field is independently "N/A" when the source had no value.
type CompetitorMetrics struct {
	Name          string `json:"name"`
	PERatio       string `json:"pe_ratio"`
	MarketCap     string `json:"market_cap"`
	EPS           string `json:"eps"`
	DividendYield string `json:"dividend_yield"`
}

// NewCompetitorMetrics returns metrics with every field marked unavailable.
func NewCompetitorMetrics() *CompetitorMetrics {
	return &CompetitorMetrics{
		Name:          MetricUnavailable,
		PERatio:       MetricUnavailable,
		MarketCap:     MetricUnavailable,
		EPS:           MetricUnavailable,
		DividendYield: MetricUnavailable,
	}
}
