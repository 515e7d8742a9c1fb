// Package query selects and orders listing collections. Select is a pure
// function: the same inputs always produce the same sequence and the input
// slice is never modified.
package query

import (
	"sort"
	"strings"

	"property-manager/internal/models"
)

// FilterAll matches every value of an enum filter field.
const FilterAll = "ALL"

// Filter is a set of independently ANDed predicates. Zero values impose no
// constraint: an empty (or "ALL") status/type matches everything, and a
// range bound of 0 leaves that side open, so a (0,0) range is unconstrained.
type Filter struct {
	Status   string
	Type     string
	MinPrice int64
	MaxPrice int64
	MinArea  float64
	MaxArea  float64
	Search   string
}

// Sort directions.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Sort keys. Numeric and date keys compare by value, text keys
// lexicographically.
const (
	SortByPrice     = "price"
	SortByArea      = "area"
	SortByTitle     = "title"
	SortByAddress   = "address"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
)

// Sort names a field and a direction. A nil *Sort keeps the incoming order.
type Sort struct {
	Key       string
	Direction string
}

// ValidSortKey reports whether key is one of the supported sort fields.
func ValidSortKey(key string) bool {
	switch key {
	case SortByPrice, SortByArea, SortByTitle, SortByAddress, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// Select returns the subset of listings matching filter, ordered by s. When
// s is nil the store's order is preserved.
func Select(listings []models.Property, filter Filter, s *Sort) []models.Property {
	result := make([]models.Property, 0, len(listings))
	for _, p := range listings {
		if matches(&p, &filter) {
			result = append(result, p)
		}
	}

	if s != nil {
		sortProperties(result, s)
	}
	return result
}

func matches(p *models.Property, f *Filter) bool {
	if f.Status != "" && f.Status != FilterAll && string(p.Status) != f.Status {
		return false
	}
	if f.Type != "" && f.Type != FilterAll && string(p.Type) != f.Type {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinArea > 0 && p.Area < f.MinArea {
		return false
	}
	if f.MaxArea > 0 && p.Area > f.MaxArea {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Address), term) {
			return false
		}
	}
	return true
}

func sortProperties(properties []models.Property, s *Sort) {
	cmp := comparator(s.Key)
	if cmp == nil {
		return
	}
	desc := s.Direction == DirectionDesc

	// Stable sort: equal keys keep their relative (store) order in both
	// directions.
	sort.SliceStable(properties, func(i, j int) bool {
		c := cmp(&properties[i], &properties[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func comparator(key string) func(a, b *models.Property) int {
	switch key {
	case SortByPrice:
		return func(a, b *models.Property) int { return compareInt64(a.Price, b.Price) }
	case SortByArea:
		return func(a, b *models.Property) int { return compareFloat64(a.Area, b.Area) }
	case SortByTitle:
		return func(a, b *models.Property) int { return strings.Compare(a.Title, b.Title) }
	case SortByAddress:
		return func(a, b *models.Property) int { return strings.Compare(a.Address, b.Address) }
	case SortByCreatedAt:
		return func(a, b *models.Property) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b *models.Property) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
	return nil
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
