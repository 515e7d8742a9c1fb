// Package cleanup prunes old delete log entries on a schedule.
package cleanup

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// LogPruner is the slice of the store the retention job needs.
type LogPruner interface {
	PruneDeleteLogs(before time.Time) (int64, error)
}

// DefaultRetentionDays is how long delete log entries are kept.
const DefaultRetentionDays = 90

// Service removes delete log entries older than the retention window. The
// audit trail only needs to answer "what was removed recently", so entries
// past the window are dropped instead of accumulating forever.
type Service struct {
	store     LogPruner
	retention time.Duration
	cron      *cron.Cron
}

// NewService creates a retention service. retentionDays <= 0 falls back to
// DefaultRetentionDays.
func NewService(store LogPruner, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{
		store:     store,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
	}
}

// Start schedules a daily prune run. Call Stop when done.
func (s *Service) Start() {
	s.cron.AddFunc("@daily", func() {
		if _, err := s.Run(); err != nil {
			log.Printf("Delete log cleanup failed: %v", err)
		}
	})
	s.cron.Start()
}

// Stop halts the scheduled runs.
func (s *Service) Stop() {
	s.cron.Stop()
}

// Run prunes entries older than the retention window and returns the count.
func (s *Service) Run() (int64, error) {
	cutoff := time.Now().Add(-s.retention)

	pruned, err := s.store.PruneDeleteLogs(cutoff)
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		log.Printf("Pruned %d delete log entries older than %s", pruned, cutoff.Format("2006-01-02"))
	}
	return pruned, nil
}
