// Package insight provides the LLM-backed document analysis service
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

const DefaultCallTimeout = 120 * time.Second

// Service implements InsightService on top of a GeminiClient.
type Service struct {
	gemini  interfaces.GeminiClient
	logger  *common.Logger
	timeout time.Duration
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithCallTimeout bounds each LLM call. The upstream client enforces no
// timeout of its own, so every call here runs under a deadline.
func WithCallTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewService creates a new insight service
func NewService(gemini interfaces.GeminiClient, logger *common.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		gemini:  gemini,
		logger:  logger,
		timeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generate runs one Gemini call under the service deadline.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.gemini == nil {
		return "", fmt.Errorf("gemini client not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.gemini.GenerateContent(callCtx, prompt)
}

// Summarize produces the five-bullet executive summary for a report extract.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	s.logger.Debug().Int("chars", len(text)).Msg("Requesting summary")

	response, err := s.generate(ctx, buildSummaryPrompt(text))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// ExtractEntities identifies the main company ticker and its competitors.
func (s *Service) ExtractEntities(ctx context.Context, text string) (*models.CompanyEntities, error) {
	s.logger.Debug().Int("chars", len(text)).Msg("Requesting entity extraction")

	response, err := s.generate(ctx, buildEntityPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	var entities models.CompanyEntities
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &entities); err != nil {
		return nil, fmt.Errorf("parse entity response: %w", err)
	}
	if entities.MainTicker == "" {
		entities.MainTicker = models.UnknownTicker
	}

	s.logger.Debug().
		Str("ticker", entities.MainTicker).
		Int("competitors", len(entities.Competitors)).
		Msg("Entities extracted")

	return &entities, nil
}

// ExtractRevenueTable pulls the revenue figures as an ordered series.
func (s *Service) ExtractRevenueTable(ctx context.Context, text string) (models.RevenueSeries, error) {
	s.logger.Debug().Int("chars", len(text)).Msg("Requesting revenue table extraction")

	response, err := s.generate(ctx, buildRevenueTablePrompt(text))
	if err != nil {
		return nil, fmt.Errorf("extract revenue table: %w", err)
	}

	var series models.RevenueSeries
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &series); err != nil {
		return nil, fmt.Errorf("parse revenue table response: %w", err)
	}

	s.logger.Debug().Int("periods", len(series)).Msg("Revenue table extracted")
	return series, nil
}

// Answer answers a question grounded only in the supplied report text.
func (s *Service) Answer(ctx context.Context, reportText, question string) (string, error) {
	s.logger.Debug().
		Int("context_chars", len(reportText)).
		Str("question", question).
		Msg("Requesting answer")

	response, err := s.generate(ctx, buildAnswerPrompt(reportText, question))
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// stripCodeFences removes markdown code fences models wrap JSON replies in.
func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// Ensure Service implements InsightService
var _ interfaces.InsightService = (*Service)(nil)
