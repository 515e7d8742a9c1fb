package database

import (
	"errors"
	"time"

	"property-manager/internal/models"
)

// ErrNotFound is returned when no property exists for the requested id.
var ErrNotFound = errors.New("property not found")

// Store is the persistence boundary for the listing collection. Backends:
// MySQL via GORM (production), PostgreSQL via raw SQL (legacy), and an
// in-memory map (tests, storage-less deployments).
type Store interface {
	// ListProperties returns all listings, newest first (created_at DESC,
	// id DESC as tiebreak). This order is the fixed default independent of
	// any caller-side sort.
	ListProperties() ([]models.Property, error)

	// GetProperty returns the listing with the given id or ErrNotFound.
	GetProperty(id string) (*models.Property, error)

	// CreateProperty validates in, assigns a fresh id and timestamps
	// (createdAt == updatedAt) and returns the stored record.
	CreateProperty(in *models.PropertyInput) (*models.Property, error)

	// UpdateProperty merges the supplied patch fields into the existing
	// record and refreshes updatedAt. Returns ErrNotFound for unknown ids.
	UpdateProperty(id string, patch *models.PropertyPatch) (*models.Property, error)

	// DeleteProperty removes the record permanently and writes a delete
	// log entry. Deleting an absent id is an error, not a no-op.
	DeleteProperty(id string) error

	// GetDashboardStats computes the dashboard aggregates.
	GetDashboardStats() (*models.DashboardStats, error)

	// RecentDeleteLogs returns the newest delete log entries.
	RecentDeleteLogs(limit int) ([]models.DeleteLog, error)

	// PruneDeleteLogs drops log entries older than the cutoff and reports
	// how many were removed.
	PruneDeleteLogs(before time.Time) (int64, error)

	Close() error
}
