package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-manager/internal/models"
)

func testListings() []models.Property {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Property{
		{
			ID:        "p1",
			Title:     "강남역 인근 신축 아파트",
			Address:   "서울시 강남구 테헤란로 123",
			Price:     1500000000,
			Area:      85,
			Type:      models.PropertyTypeApartment,
			Status:    models.PropertyStatusAvailable,
			CreatedAt: base.Add(3 * time.Hour),
			UpdatedAt: base.Add(3 * time.Hour),
		},
		{
			ID:        "p2",
			Title:     "마포구 아늑한 단독주택",
			Address:   "서울시 마포구 마포대로 456",
			Price:     900000000,
			Area:      120,
			Type:      models.PropertyTypeHouse,
			Status:    models.PropertyStatusSold,
			CreatedAt: base.Add(2 * time.Hour),
			UpdatedAt: base.Add(4 * time.Hour),
		},
		{
			ID:        "p3",
			Title:     "역삼동 상가 건물",
			Address:   "서울시 강남구 역삼동 77",
			Price:     900000000,
			Area:      200,
			Type:      models.PropertyTypeCommercial,
			Status:    models.PropertyStatusRented,
			CreatedAt: base.Add(time.Hour),
			UpdatedAt: base.Add(time.Hour),
		},
	}
}

func ids(properties []models.Property) []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.ID
	}
	return out
}

func TestSelectNoFilterKeepsOrder(t *testing.T) {
	listings := testListings()
	result := Select(listings, Filter{}, nil)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(result))
}

func TestSelectStatusFilter(t *testing.T) {
	listings := testListings()

	result := Select(listings, Filter{Status: "AVAILABLE"}, nil)
	require.Len(t, result, 1)
	assert.Equal(t, "p1", result[0].ID)

	// The filtered set is exactly the AVAILABLE subset of the unfiltered set.
	all := Select(listings, Filter{}, nil)
	var available []string
	for _, p := range all {
		if p.Status == models.PropertyStatusAvailable {
			available = append(available, p.ID)
		}
	}
	assert.Equal(t, available, ids(result))

	// "ALL" matches everything.
	assert.Len(t, Select(listings, Filter{Status: FilterAll}, nil), 3)
}

func TestSelectTypeFilter(t *testing.T) {
	result := Select(testListings(), Filter{Type: "HOUSE"}, nil)
	require.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)
}

func TestSelectPriceRange(t *testing.T) {
	listings := testListings()

	// (0,0) imposes no constraint.
	assert.Len(t, Select(listings, Filter{MinPrice: 0, MaxPrice: 0}, nil), 3)

	// Bounds are inclusive.
	result := Select(listings, Filter{MinPrice: 900000000, MaxPrice: 900000000}, nil)
	assert.Equal(t, []string{"p2", "p3"}, ids(result))

	// Single-sided bounds.
	result = Select(listings, Filter{MinPrice: 1000000000}, nil)
	assert.Equal(t, []string{"p1"}, ids(result))
	result = Select(listings, Filter{MaxPrice: 1000000000}, nil)
	assert.Equal(t, []string{"p2", "p3"}, ids(result))
}

func TestSelectAreaRange(t *testing.T) {
	listings := testListings()

	assert.Len(t, Select(listings, Filter{MinArea: 0, MaxArea: 0}, nil), 3)

	result := Select(listings, Filter{MinArea: 100, MaxArea: 150}, nil)
	assert.Equal(t, []string{"p2"}, ids(result))
}

func TestSelectSearchTerm(t *testing.T) {
	listings := testListings()

	// Matches title.
	result := Select(listings, Filter{Search: "아파트"}, nil)
	assert.Equal(t, []string{"p1"}, ids(result))

	// Matches address.
	result = Select(listings, Filter{Search: "강남구"}, nil)
	assert.Equal(t, []string{"p1", "p3"}, ids(result))

	// Case-insensitive for ASCII terms.
	listings[0].Title = "Gangnam Officetel"
	result = Select(listings, Filter{Search: "gangnam"}, nil)
	assert.Equal(t, []string{"p1"}, ids(result))

	// No match.
	assert.Empty(t, Select(listings, Filter{Search: "부산"}, nil))
}

func TestSelectFiltersCompose(t *testing.T) {
	listings := testListings()

	result := Select(listings, Filter{Search: "강남구", MaxPrice: 1000000000}, nil)
	assert.Equal(t, []string{"p3"}, ids(result))
}

func TestSelectSort(t *testing.T) {
	listings := testListings()

	result := Select(listings, Filter{}, &Sort{Key: SortByPrice, Direction: DirectionAsc})
	// p2 and p3 share a price; the stable sort keeps their incoming order.
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(result))

	result = Select(listings, Filter{}, &Sort{Key: SortByPrice, Direction: DirectionDesc})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(result))

	result = Select(listings, Filter{}, &Sort{Key: SortByArea, Direction: DirectionDesc})
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(result))

	result = Select(listings, Filter{}, &Sort{Key: SortByCreatedAt, Direction: DirectionAsc})
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(result))

	result = Select(listings, Filter{}, &Sort{Key: SortByUpdatedAt, Direction: DirectionDesc})
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(result))

	result = Select(listings, Filter{}, &Sort{Key: SortByTitle, Direction: DirectionAsc})
	assert.Equal(t, "강남역 인근 신축 아파트", result[0].Title)
}

func TestSelectDeterministic(t *testing.T) {
	listings := testListings()
	filter := Filter{Status: FilterAll, MaxPrice: 2000000000}
	s := &Sort{Key: SortByPrice, Direction: DirectionAsc}

	first := Select(listings, filter, s)
	second := Select(listings, filter, s)
	assert.Equal(t, first, second)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	listings := testListings()
	before := ids(listings)

	Select(listings, Filter{}, &Sort{Key: SortByPrice, Direction: DirectionAsc})
	assert.Equal(t, before, ids(listings))
}

func TestValidSortKey(t *testing.T) {
	for _, key := range []string{SortByPrice, SortByArea, SortByTitle, SortByAddress, SortByCreatedAt, SortByUpdatedAt} {
		assert.True(t, ValidSortKey(key), key)
	}
	assert.False(t, ValidSortKey("rent"))
	assert.False(t, ValidSortKey(""))
}
