package database

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"property-manager/internal/models"
)

// MemoryStore keeps the listing collection in an in-process map keyed by id.
// It backs the storage-less deployment mode and the handler tests.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[string]*models.Property
	deleteLogs []models.DeleteLog

	// Now is the clock used for timestamps. Tests override it.
	Now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[string]*models.Property),
		Now:        time.Now,
	}
}

func (s *MemoryStore) ListProperties() ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		properties = append(properties, copyProperty(p))
	}

	// Newest first; equal timestamps fall back to id so the order stays
	// deterministic across calls.
	sort.Slice(properties, func(i, j int) bool {
		if !properties[i].CreatedAt.Equal(properties[j].CreatedAt) {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		}
		return properties[i].ID > properties[j].ID
	})

	return properties, nil
}

func (s *MemoryStore) GetProperty(id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyProperty(p)
	return &out, nil
}

func (s *MemoryStore) CreateProperty(in *models.PropertyInput) (*models.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	property := in.ToProperty()
	property.ID = uuid.NewString()
	now := s.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	s.properties[property.ID] = &property
	out := copyProperty(&property)
	return &out, nil
}

func (s *MemoryStore) UpdateProperty(id string, patch *models.PropertyPatch) (*models.Property, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(p)
	p.UpdatedAt = s.Now()

	out := copyProperty(p)
	return &out, nil
}

func (s *MemoryStore) DeleteProperty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.properties, id)
	s.deleteLogs = append(s.deleteLogs, models.DeleteLog{
		ID:         uint(len(s.deleteLogs) + 1),
		PropertyID: p.ID,
		Title:      p.Title,
		DeletedAt:  s.Now(),
		Reason:     models.DeleteReasonManual,
	})
	return nil
}

func (s *MemoryStore) GetDashboardStats() (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DashboardStats{
		StatusCounts:      make(map[models.PropertyStatus]int64),
		TypeCounts:        make(map[models.PropertyType]int64),
		PriceDistribution: models.PriceBuckets(),
	}

	var areaSum float64
	for _, p := range s.properties {
		stats.Total++
		stats.StatusCounts[p.Status]++
		stats.TypeCounts[p.Type]++
		stats.TotalPrice += p.Price
		areaSum += p.Area

		for i := range stats.PriceDistribution {
			b := &stats.PriceDistribution[i]
			if p.Price >= b.MinPrice && p.Price < b.MaxPrice {
				b.Count++
				break
			}
		}
	}

	if stats.Total > 0 {
		stats.AveragePrice = stats.TotalPrice / stats.Total
		stats.AverageArea = areaSum / float64(stats.Total)
	}
	return stats, nil
}

func (s *MemoryStore) RecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := append([]models.DeleteLog(nil), s.deleteLogs...)
	// Newest entries first.
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *MemoryStore) PruneDeleteLogs(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.deleteLogs[:0]
	var pruned int64
	for _, entry := range s.deleteLogs {
		if entry.DeletedAt.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, entry)
	}
	s.deleteLogs = kept
	return pruned, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// copyProperty returns a deep copy so callers never alias stored records.
func copyProperty(p *models.Property) models.Property {
	out := *p
	out.Images = append([]string(nil), p.Images...)
	return out
}
