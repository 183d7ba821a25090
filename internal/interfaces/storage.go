// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	ReportStore() ReportStore
	SystemKV() SystemKVStore

	// Lifecycle
	Close() error
}

// ReportStore persists and retrieves analysis reports.
type ReportStore interface {
	// SaveReport persists a report, assigning its id and creation time.
	// The returned id is opaque; callers must not assume ids are sequential.
	SaveReport(ctx context.Context, report *models.Report) (string, error)

	// GetReport retrieves a report by id. Returns (nil, nil) when the id
	// does not exist.
	GetReport(ctx context.Context, id string) (*models.Report, error)

	// ListReports returns all stored reports, newest first.
	ListReports(ctx context.Context) ([]*models.Report, error)
}

// SystemKVStore holds system-level key-value config (e.g. API keys set at runtime).
type SystemKVStore interface {
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error
}
