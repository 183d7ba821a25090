// Package marketdata resolves tickers to financial metrics with source fallback
package marketdata

import (
	"context"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

// Service implements MarketDataService over a primary and a secondary source.
// The primary covers NSE-listed tickers, the secondary covers global/US ones.
type Service struct {
	primary   interfaces.MarketClient
	secondary interfaces.MarketClient
	logger    *common.Logger
}

// NewService creates a new market data service
func NewService(primary, secondary interfaces.MarketClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Overview resolves a single ticker: primary first, secondary when the
// primary errors or has no usable record. (nil, nil) means neither source
// could resolve the ticker.
func (s *Service) Overview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error) {
	if s.primary != nil {
		metrics, err := s.primary.GetOverview(ctx, ticker)
		if err != nil {
			s.logger.Debug().Str("ticker", ticker).Err(err).Msg("Primary market source failed, trying secondary")
		} else if metrics != nil {
			return metrics, nil
		}
	}

	if s.secondary == nil {
		return nil, nil
	}

	metrics, err := s.secondary.GetOverview(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

// GetCompetitorStats resolves each ticker independently. One failing ticker
// never affects another: its row simply carries nil metrics. The result has
// exactly one row per input ticker, in input order (duplicates included).
func (s *Service) GetCompetitorStats(ctx context.Context, tickers []string) []models.CompetitorRow {
	rows := make([]models.CompetitorRow, 0, len(tickers))

	for _, ticker := range tickers {
		metrics, err := s.Overview(ctx, ticker)
		if err != nil {
			s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Competitor lookup failed")
			metrics = nil
		}
		if metrics == nil {
			s.logger.Debug().Str("ticker", ticker).Msg("No market data for competitor")
		}
		rows = append(rows, models.CompetitorRow{Ticker: ticker, Metrics: metrics})
	}

	return rows
}

// Ensure Service implements MarketDataService
var _ interfaces.MarketDataService = (*Service)(nil)
