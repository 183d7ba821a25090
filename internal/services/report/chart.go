package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

// Renderer implements ChartRenderer with go-chart PNG bar charts.
type Renderer struct {
	logger *common.Logger
}

// NewRenderer creates a new chart renderer.
func NewRenderer(logger *common.Logger) *Renderer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Renderer{logger: logger}
}

// CreateBarChart draws a labeled bar chart (x = period labels in series
// order, y = parsed values) and writes it to path. Returns false without
// writing when the series is empty or contains no parseable value;
// individual unparseable values are skipped, never fatal.
func (r *Renderer) CreateBarChart(series models.RevenueSeries, title, path string) (bool, error) {
	if len(series) == 0 {
		r.logger.Debug().Msg("No revenue data to plot, skipping chart")
		return false, nil
	}

	bars := make([]chart.Value, 0, len(series))
	for _, point := range series {
		value, ok := parseChartValue(point.Value)
		if !ok {
			r.logger.Debug().Str("period", point.Period).Str("value", point.Value).Msg("Skipping non-numeric chart value")
			continue
		}
		bars = append(bars, chart.Value{Label: point.Period, Value: value})
	}

	if len(bars) == 0 {
		r.logger.Debug().Str("title", title).Msg("No numeric values found, skipping chart")
		return false, nil
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.Style{},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	for i := range graph.Bars {
		graph.Bars[i].Style = chart.Style{
			FillColor:   drawing.ColorFromHex("7dd3fc"), // sky-300
			StrokeColor: drawing.ColorFromHex("0284c7"), // sky-600
			StrokeWidth: 1,
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create chart file: %w", err)
	}

	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("chart render failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("close chart file: %w", err)
	}

	r.logger.Debug().Str("path", path).Int("bars", len(bars)).Msg("Chart rendered")
	return true, nil
}

// parseChartValue parses a revenue figure, tolerating thousands separators.
func parseChartValue(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Ensure Renderer implements ChartRenderer
var _ interfaces.ChartRenderer = (*Renderer)(nil)
