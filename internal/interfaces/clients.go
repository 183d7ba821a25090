// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// MarketClient is a single market-data source resolving a ticker to headline
// metrics. Implementations return (nil, nil) when the source has no usable
// record for the ticker (no name populated).
type MarketClient interface {
	GetOverview(ctx context.Context, ticker string) (*models.CompetitorMetrics, error)
}
