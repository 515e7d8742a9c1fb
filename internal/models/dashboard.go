package models

// DashboardStats holds the aggregates rendered on the dashboard.
type DashboardStats struct {
	Total             int64                    `json:"total"`
	StatusCounts      map[PropertyStatus]int64 `json:"status_counts"`
	TypeCounts        map[PropertyType]int64   `json:"type_counts"`
	TotalPrice        int64                    `json:"total_price"`
	AveragePrice      int64                    `json:"average_price"`
	AverageArea       float64                  `json:"average_area"`
	PriceDistribution []PriceBucket            `json:"price_distribution"`

	// Display strings filled in by the HTTP layer.
	TotalPriceFormatted  string `json:"total_price_formatted,omitempty"`
	AverageAreaFormatted string `json:"average_area_formatted,omitempty"`
}

// PriceBucket is one bar of the price distribution chart. MaxPrice is
// exclusive; the last bucket is open-ended.
type PriceBucket struct {
	RangeLabel string `json:"range_label"`
	MinPrice   int64  `json:"min_price"`
	MaxPrice   int64  `json:"max_price"`
	Count      int64  `json:"count"`
}

// PriceBuckets returns the fixed distribution ranges (in won).
func PriceBuckets() []PriceBucket {
	return []PriceBucket{
		{RangeLabel: "〜1억", MinPrice: 0, MaxPrice: 100000000},
		{RangeLabel: "1〜3억", MinPrice: 100000000, MaxPrice: 300000000},
		{RangeLabel: "3〜5억", MinPrice: 300000000, MaxPrice: 500000000},
		{RangeLabel: "5〜10억", MinPrice: 500000000, MaxPrice: 1000000000},
		{RangeLabel: "10〜20억", MinPrice: 1000000000, MaxPrice: 2000000000},
		{RangeLabel: "20억〜", MinPrice: 2000000000, MaxPrice: 1000000000000},
	}
}
