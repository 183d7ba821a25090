package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

// reportSelectFields lists the fields to select from report, aliasing
// report_id to id for struct mapping.
const reportSelectFields = `report_id as id, ticker, summary, competitors,
	competitor_rows, chart_filename, document_text, created_at`

// ReportStore implements interfaces.ReportStore using SurrealDB.
type ReportStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db *surrealdb.DB, logger *common.Logger) *ReportStore {
	return &ReportStore{db: db, logger: logger}
}

// SaveReport persists a report, assigning its id and creation time when unset.
func (s *ReportStore) SaveReport(ctx context.Context, report *models.Report) (string, error) {
	if report.ID == "" {
		report.ID = fmt.Sprintf("rp_%s", uuid.New().String()[:8])
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	if report.Competitors == nil {
		report.Competitors = []string{}
	}
	if report.CompetitorRows == nil {
		report.CompetitorRows = []models.CompetitorRow{}
	}

	sql := `UPSERT $rid SET
		report_id = $report_id, ticker = $ticker, summary = $summary,
		competitors = $competitors, competitor_rows = $competitor_rows,
		chart_filename = $chart_filename, document_text = $document_text,
		created_at = $created_at`
	vars := map[string]any{
		"rid":             surrealmodels.NewRecordID("report", report.ID),
		"report_id":       report.ID,
		"ticker":          report.Ticker,
		"summary":         report.Summary,
		"competitors":     report.Competitors,
		"competitor_rows": report.CompetitorRows,
		"chart_filename":  report.ChartFilename,
		"document_text":   report.DocumentText,
		"created_at":      report.CreatedAt,
	}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			break
		}
		if attempt == 3 {
			return "", fmt.Errorf("failed to save report after retries: %w", err)
		}
	}

	s.logger.Debug().Str("report_id", report.ID).Str("ticker", report.Ticker).Msg("Report saved")
	return report.ID, nil
}

// GetReport retrieves a report by id. Returns (nil, nil) when the id does not exist.
func (s *ReportStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	sql := "SELECT " + reportSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("report", id),
	}

	results, err := surrealdb.Query[[]models.Report](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// ListReports returns all stored reports, newest first.
func (s *ReportStore) ListReports(ctx context.Context) ([]*models.Report, error) {
	// report_id as tiebreaker for deterministic ordering when timestamps are equal
	sql := "SELECT " + reportSelectFields + " FROM report ORDER BY created_at DESC, report_id DESC"

	results, err := surrealdb.Query[[]models.Report](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*models.Report, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			reports = append(reports, &(*results)[0].Result[i])
		}
	}
	return reports, nil
}

// Compile-time check
var _ interfaces.ReportStore = (*ReportStore)(nil)
