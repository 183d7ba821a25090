package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/finsight/internal/models"
)

// --- mocks ---

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) ExtractText(data []byte) (string, error) {
	return m.text, m.err
}

type mockInsight struct {
	summary     string
	summaryErr  error
	entities    *models.CompanyEntities
	entitiesErr error
	series      models.RevenueSeries
	seriesErr   error
	answer      string
	answerErr   error

	answerCalls    int
	lastReportText string
}

func (m *mockInsight) Summarize(ctx context.Context, text string) (string, error) {
	return m.summary, m.summaryErr
}

func (m *mockInsight) ExtractEntities(ctx context.Context, text string) (*models.CompanyEntities, error) {
	return m.entities, m.entitiesErr
}

func (m *mockInsight) ExtractRevenueTable(ctx context.Context, text string) (models.RevenueSeries, error) {
	return m.series, m.seriesErr
}

func (m *mockInsight) Answer(ctx context.Context, reportText, question string) (string, error) {
	m.answerCalls++
	m.lastReportText = reportText
	return m.answer, m.answerErr
}

type mockMarketData struct{}

func (m *mockMarketData) Overview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error) {
	return nil, nil
}

func (m *mockMarketData) GetCompetitorStats(ctx context.Context, tickers []string) []models.CompetitorRow {
	rows := make([]models.CompetitorRow, 0, len(tickers))
	for _, t := range tickers {
		rows = append(rows, models.CompetitorRow{Ticker: t, Metrics: models.NewCompetitorMetrics()})
	}
	return rows
}

type mockRenderer struct {
	created   bool
	err       error
	lastTitle string
	lastPath  string
	calls     int
}

func (m *mockRenderer) CreateBarChart(series models.RevenueSeries, title, path string) (bool, error) {
	m.calls++
	m.lastTitle = title
	m.lastPath = path
	return m.created, m.err
}

type mockStore struct {
	reports map[string]*models.Report
	saveErr error
	getErr  error
}

func newMockStore() *mockStore {
	return &mockStore{reports: make(map[string]*models.Report)}
}

func (m *mockStore) SaveReport(ctx context.Context, report *models.Report) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if report.ID == "" {
		report.ID = "rp_test1234"
	}
	m.reports[report.ID] = report
	return report.ID, nil
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.reports[id], nil
}

func (m *mockStore) ListReports(ctx context.Context) ([]*models.Report, error) {
	out := make([]*models.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func newTestService(ex *mockExtractor, in *mockInsight, rd *mockRenderer, st *mockStore) *Service {
	return NewService(ex, in, &mockMarketData{}, rd, st, "static/charts", nil)
}

// --- BuildReport ---

func TestBuildReport_HappyPath(t *testing.T) {
	insight := &mockInsight{
		summary:  "- Strong quarter",
		entities: &models.CompanyEntities{MainTicker: "TCS", Competitors: []string{"INFY", "WIPRO"}},
		series:   models.RevenueSeries{{Period: "Q1 FY24", Value: "1200"}},
	}
	renderer := &mockRenderer{created: true}
	store := newMockStore()

	svc := newTestService(&mockExtractor{text: "report body"}, insight, renderer, store)
	report, err := svc.BuildReport(context.Background(), []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "rp_test1234", report.ID)
	assert.Equal(t, "TCS", report.Ticker)
	assert.Equal(t, "- Strong quarter", report.Summary)
	assert.Equal(t, []string{"INFY", "WIPRO"}, report.Competitors)
	require.Len(t, report.CompetitorRows, 2)
	assert.Equal(t, "INFY", report.CompetitorRows[0].Ticker)
	assert.Equal(t, "charts/TCS_revenue_chart.png", report.ChartFilename)
	assert.Equal(t, "Quarterly Revenue (Cr)", renderer.lastTitle)

	// Persisted, not just returned
	saved, _ := store.GetReport(context.Background(), report.ID)
	require.NotNil(t, saved)
}

func TestBuildReport_ExtractionFailureStillPersists(t *testing.T) {
	insight := &mockInsight{
		summaryErr:  errors.New("ai down"),
		entitiesErr: errors.New("ai down"),
		seriesErr:   errors.New("ai down"),
	}
	store := newMockStore()

	svc := newTestService(&mockExtractor{err: errors.New("bad pdf")}, insight, &mockRenderer{}, store)
	report, err := svc.BuildReport(context.Background(), []byte("not a pdf"))
	require.NoError(t, err)

	assert.Equal(t, models.UnknownTicker, report.Ticker)
	assert.Equal(t, "Summary unavailable (AI error).", report.Summary)
	assert.Empty(t, report.Competitors)
	assert.Empty(t, report.CompetitorRows)
	assert.Empty(t, report.ChartFilename)
	assert.Empty(t, report.DocumentText)
	assert.NotEmpty(t, report.ID)
}

func TestBuildReport_AnnualChartTitle(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
		series:   models.RevenueSeries{{Period: "FY2024", Value: "5000"}},
	}
	renderer := &mockRenderer{created: true}

	svc := newTestService(&mockExtractor{text: "body"}, insight, renderer, newMockStore())
	_, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Annual Revenue (Cr)", renderer.lastTitle)
}

func TestBuildReport_LowercaseQuarterPrefix(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
		series:   models.RevenueSeries{{Period: "q1 fy24", Value: "1"}},
	}
	renderer := &mockRenderer{created: true}

	svc := newTestService(&mockExtractor{text: "body"}, insight, renderer, newMockStore())
	_, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Revenue (Cr)", renderer.lastTitle)
}

func TestBuildReport_RendererDeclinesChart(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
		series:   models.RevenueSeries{{Period: "Q1", Value: "n/a"}},
	}
	renderer := &mockRenderer{created: false}

	svc := newTestService(&mockExtractor{text: "body"}, insight, renderer, newMockStore())
	report, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.calls)
	assert.Empty(t, report.ChartFilename)
}

func TestBuildReport_EmptySeriesSkipsRenderer(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
	}
	renderer := &mockRenderer{created: true}

	svc := newTestService(&mockExtractor{text: "body"}, insight, renderer, newMockStore())
	report, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, renderer.calls)
	assert.Empty(t, report.ChartFilename)
}

func TestBuildReport_RenderErrorIsNotFatal(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
		series:   models.RevenueSeries{{Period: "Q1", Value: "1"}},
	}
	renderer := &mockRenderer{err: errors.New("disk full")}

	svc := newTestService(&mockExtractor{text: "body"}, insight, renderer, newMockStore())
	report, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.ChartFilename)
}

func TestBuildReport_StoreFailureIsFatal(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "TCS"},
	}
	store := newMockStore()
	store.saveErr = errors.New("db down")

	svc := newTestService(&mockExtractor{text: "body"}, insight, &mockRenderer{}, store)
	report, err := svc.BuildReport(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestBuildReport_BlankTickerFallsBackToUnknown(t *testing.T) {
	insight := &mockInsight{
		summary:  "ok",
		entities: &models.CompanyEntities{MainTicker: "  ", Competitors: []string{"INFY"}},
	}

	svc := newTestService(&mockExtractor{text: "body"}, insight, &mockRenderer{}, newMockStore())
	report, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.UnknownTicker, report.Ticker)
	assert.Equal(t, []string{"INFY"}, report.Competitors)
}

// --- AnswerQuestion ---

func TestAnswerQuestion_NotFound(t *testing.T) {
	svc := newTestService(&mockExtractor{}, &mockInsight{}, &mockRenderer{}, newMockStore())

	_, err := svc.AnswerQuestion(context.Background(), "rp_missing", "What was revenue?")
	assert.ErrorIs(t, err, models.ErrReportNotFound)
}

func TestAnswerQuestion_BlankQuestionSkipsAI(t *testing.T) {
	insight := &mockInsight{answer: "should not be used"}
	store := newMockStore()
	store.reports["rp_1"] = &models.Report{ID: "rp_1", DocumentText: "text"}

	svc := newTestService(&mockExtractor{}, insight, &mockRenderer{}, store)
	answer, err := svc.AnswerQuestion(context.Background(), "rp_1", "   ")
	require.NoError(t, err)

	assert.Empty(t, answer)
	assert.Zero(t, insight.answerCalls)
}

func TestAnswerQuestion_AIFailureReturnsFallback(t *testing.T) {
	insight := &mockInsight{answerErr: errors.New("quota exceeded")}
	store := newMockStore()
	store.reports["rp_1"] = &models.Report{ID: "rp_1", DocumentText: "text"}

	svc := newTestService(&mockExtractor{}, insight, &mockRenderer{}, store)
	answer, err := svc.AnswerQuestion(context.Background(), "rp_1", "What was revenue?")
	require.NoError(t, err)
	assert.Equal(t, "AI answer currently unavailable.", answer)
}

func TestAnswerQuestion_HappyPath(t *testing.T) {
	insight := &mockInsight{answer: "Revenue was 1200 Cr."}
	store := newMockStore()
	store.reports["rp_1"] = &models.Report{ID: "rp_1", DocumentText: "full report text"}

	svc := newTestService(&mockExtractor{}, insight, &mockRenderer{}, store)
	answer, err := svc.AnswerQuestion(context.Background(), "rp_1", "What was revenue?")
	require.NoError(t, err)

	assert.Equal(t, "Revenue was 1200 Cr.", answer)
	assert.Equal(t, "full report text", insight.lastReportText)
}
