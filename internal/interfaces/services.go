// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// DocumentExtractor converts raw document bytes into plain text.
type DocumentExtractor interface {
	ExtractText(data []byte) (string, error)
}

// InsightService is the LLM-backed text-understanding collaborator.
type InsightService interface {
	// Summarize produces the executive-summary bullets for a report extract.
	Summarize(ctx context.Context, text string) (string, error)

	// ExtractEntities identifies the issuing company's ticker and its
	// major publicly traded competitors.
	ExtractEntities(ctx context.Context, text string) (*models.CompanyEntities, error)

	// ExtractRevenueTable pulls the quarterly or annual revenue figures
	// as an ordered period->value series.
	ExtractRevenueTable(ctx context.Context, text string) (models.RevenueSeries, error)

	// Answer answers a question grounded only in the supplied report text.
	Answer(ctx context.Context, reportText, question string) (string, error)
}

// MarketDataService resolves tickers to financial metrics with a
// primary/secondary source fallback per ticker.
type MarketDataService interface {
	// Overview resolves a single ticker. (nil, nil) means both sources had
	// no usable record.
	Overview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error)

	// GetCompetitorStats resolves each ticker independently. It never fails:
	// the result has exactly one row per input ticker in input order, with
	// nil metrics for tickers neither source could resolve.
	GetCompetitorStats(ctx context.Context, tickers []string) []models.CompetitorRow
}

// ChartRenderer draws a labeled bar chart from a revenue series.
type ChartRenderer interface {
	// CreateBarChart writes a PNG to path and returns true, or returns false
	// without writing a file when the series is empty or has no value that
	// parses as a number. Unparseable individual values are skipped.
	CreateBarChart(series models.RevenueSeries, title, path string) (bool, error)
}

// ReportService is the report-construction pipeline exposed to the HTTP and
// CLI layers.
type ReportService interface {
	// BuildReport runs the full pipeline over an uploaded document and
	// persists the result. Every analysis step degrades to a safe default on
	// failure; only persistence failure aborts the run.
	BuildReport(ctx context.Context, document []byte) (*models.Report, error)

	// AnswerQuestion answers a question against a stored report's text.
	// Unknown ids yield models.ErrReportNotFound.
	AnswerQuestion(ctx context.Context, reportID, question string) (string, error)
}
