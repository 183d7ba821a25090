// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server and CLI entrypoints.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/finsight/internal/clients/alphavantage"
	"github.com/bobmcallan/finsight/internal/clients/gemini"
	"github.com/bobmcallan/finsight/internal/clients/yahoo"
	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/services/document"
	"github.com/bobmcallan/finsight/internal/services/insight"
	"github.com/bobmcallan/finsight/internal/services/marketdata"
	"github.com/bobmcallan/finsight/internal/services/report"
	"github.com/bobmcallan/finsight/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
// It is the shared core used by cmd/finsight-server and cmd/finsight-cli.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	GeminiClient      interfaces.GeminiClient
	InsightService    interfaces.InsightService
	MarketDataService interfaces.MarketDataService
	ReportService     interfaces.ReportService
	StartupTime       time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Get binary directory for self-contained operation
	binDir := getBinaryDir()

	// Load configuration - check provided path, FINSIGHT_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FINSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finsight.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finsight.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := common.NewLogger(config.Logging.Level)

	// Initialize storage
	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Resolve API keys
	ctx := context.Background()
	kvStore := storageManager.SystemKV()

	geminiKey, err := common.ResolveAPIKey(ctx, kvStore, "gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	}

	alphaKey, err := common.ResolveAPIKey(ctx, kvStore, "alphavantage_api_key", config.Clients.AlphaVantage.APIKey)
	if err != nil {
		logger.Warn().Msg("Alpha Vantage API key not configured - fallback market data will be unavailable")
	}

	// Initialize API clients. Interface slots stay nil unless the concrete
	// client was actually constructed, so services can detect missing clients.
	var geminiClient interfaces.GeminiClient
	if geminiKey != "" {
		gc, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = gc
		}
	}

	yahooClient := yahoo.NewClient(
		yahoo.WithLogger(logger),
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	var alphaClient *alphavantage.Client
	if alphaKey != "" {
		alphaClient = alphavantage.NewClient(alphaKey,
			alphavantage.WithLogger(logger),
			alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
			alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
			alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
		)
	}

	var secondary interfaces.MarketClient
	if alphaClient != nil {
		secondary = alphaClient
	}
	var primary interfaces.MarketClient = yahooClient

	// Initialize services
	extractor := document.NewExtractor(logger)
	insightService := insight.NewService(geminiClient, logger,
		insight.WithCallTimeout(config.Clients.Gemini.GetTimeout()),
	)
	marketDataService := marketdata.NewService(primary, secondary, logger)
	renderer := report.NewRenderer(logger)
	reportService := report.NewService(
		extractor,
		insightService,
		marketDataService,
		renderer,
		storageManager.ReportStore(),
		config.Storage.ChartPath(),
		logger,
	)

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		GeminiClient:      geminiClient,
		InsightService:    insightService,
		MarketDataService: marketDataService,
		ReportService:     reportService,
		StartupTime:       startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
