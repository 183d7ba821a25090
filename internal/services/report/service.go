// Package report implements the document analysis pipeline that turns an
// uploaded filing into a persisted report: text extraction, AI insight
// generation, competitor market data, and chart rendering.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

// Fallback text used when an AI step fails. The pipeline keeps going and
// records these instead of aborting the report.
const (
	summaryUnavailable = "Summary unavailable (AI error)."
	answerUnavailable  = "AI answer currently unavailable."
)

// Chart titles, chosen by inspecting the first period label.
const (
	quarterlyChartTitle = "Quarterly Revenue (Cr)"
	annualChartTitle    = "Annual Revenue (Cr)"
)

// Service orchestrates the report pipeline.
type Service struct {
	extractor  interfaces.DocumentExtractor
	insight    interfaces.InsightService
	marketData interfaces.MarketDataService
	renderer   interfaces.ChartRenderer
	store      interfaces.ReportStore
	chartDir   string
	logger     *common.Logger
}

// NewService creates the report pipeline. chartDir is the directory chart
// PNGs are written to; the stored report references them as "charts/<file>".
func NewService(
	extractor interfaces.DocumentExtractor,
	insight interfaces.InsightService,
	marketData interfaces.MarketDataService,
	renderer interfaces.ChartRenderer,
	store interfaces.ReportStore,
	chartDir string,
	logger *common.Logger,
) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		extractor:  extractor,
		insight:    insight,
		marketData: marketData,
		renderer:   renderer,
		store:      store,
		chartDir:   chartDir,
		logger:     logger,
	}
}

// BuildReport runs the full pipeline over a document and persists the result.
// Each analysis step substitutes a safe default on failure; only the final
// save can fail the call.
func (s *Service) BuildReport(ctx context.Context, document []byte) (*models.Report, error) {
	report := &models.Report{
		Ticker:      models.UnknownTicker,
		Competitors: []string{},
	}

	// Step 1: text extraction. On failure the report is still built and
	// persisted with empty text and all-default fields.
	text, err := s.extractor.ExtractText(document)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Text extraction failed, building empty report")
		text = ""
	}
	report.DocumentText = ForStorage(text)

	insightText := ForInsight(text)

	// Step 2: summary.
	summary, err := s.insight.Summarize(ctx, insightText)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Summary generation failed")
		summary = summaryUnavailable
	}
	report.Summary = summary

	// Step 3: entities.
	entities, err := s.insight.ExtractEntities(ctx, insightText)
	if err != nil || entities == nil {
		s.logger.Warn().Err(err).Msg("Entity extraction failed")
		entities = &models.CompanyEntities{MainTicker: models.UnknownTicker}
	}
	if strings.TrimSpace(entities.MainTicker) != "" {
		report.Ticker = entities.MainTicker
	}
	if entities.Competitors != nil {
		report.Competitors = entities.Competitors
	}

	// Step 4: revenue table. Failure just means no chart.
	series, err := s.insight.ExtractRevenueTable(ctx, insightText)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Revenue table extraction failed")
		series = nil
	}

	// Step 5: competitor market data. Never fails; unresolved tickers get
	// nil metrics.
	report.CompetitorRows = s.marketData.GetCompetitorStats(ctx, report.Competitors)

	// Step 6: chart.
	report.ChartFilename = s.renderChart(series, report.Ticker)

	// Step 7/8: persist and return with the assigned id.
	id, err := s.store.SaveReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	report.ID = id

	s.logger.Info().
		Str("report_id", id).
		Str("ticker", report.Ticker).
		Int("competitors", len(report.Competitors)).
		Bool("chart", report.ChartFilename != "").
		Msg("Report built")

	return report, nil
}

// renderChart draws the revenue chart and returns the stored reference
// ("charts/<file>") or "" when nothing was drawn. Render errors are logged
// and swallowed.
func (s *Service) renderChart(series models.RevenueSeries, ticker string) string {
	if len(series) == 0 {
		return ""
	}

	title := annualChartTitle
	if strings.HasPrefix(strings.ToUpper(series[0].Period), "Q") {
		title = quarterlyChartTitle
	}

	filename := fmt.Sprintf("%s_revenue_chart.png", ticker)
	path := filepath.Join(s.chartDir, filename)

	created, err := s.renderer.CreateBarChart(series, title, path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Chart rendering failed")
		return ""
	}
	if !created {
		return ""
	}
	return "charts/" + filename
}

// AnswerQuestion answers a question against a stored report's text. A blank
// question returns "" without consulting the AI. Unknown report ids return
// models.ErrReportNotFound.
func (s *Service) AnswerQuestion(ctx context.Context, reportID, question string) (string, error) {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return "", fmt.Errorf("failed to load report %s: %w", reportID, err)
	}
	if report == nil {
		return "", models.ErrReportNotFound
	}

	if strings.TrimSpace(question) == "" {
		return "", nil
	}

	answer, err := s.insight.Answer(ctx, ForQuestionAnswering(report.DocumentText), question)
	if err != nil {
		s.logger.Warn().Err(err).Str("report_id", reportID).Msg("Question answering failed")
		return answerUnavailable, nil
	}
	return answer, nil
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
