package models

import "time"

type Property struct {
	// 기본 정보
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:text;not null" json:"address"`

	// 필터용 속성
	Price int64        `gorm:"not null;index" json:"price"`
	Area  float64      `gorm:"type:decimal(10,2);not null" json:"area"`
	Type  PropertyType `gorm:"type:varchar(20);not null;index" json:"type"`

	// 상태 관리
	Status PropertyStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`

	// Image URLs in display order (first entry is the cover image).
	// Persisted as property_images rows by the GORM store and as a JSONB
	// column by the Postgres store.
	Images []string `gorm:"-" json:"images"`

	// 타임스탬프
	CreatedAt time.Time `gorm:"not null;index:idx_created_at,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// PropertyType은 매물 유형
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
)

// Valid reports whether t is one of the enumerated property types.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial:
		return true
	}
	return false
}

// PropertyStatus는 매물의 상태
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "AVAILABLE"
	PropertyStatusSold      PropertyStatus = "SOLD"
	PropertyStatusRented    PropertyStatus = "RENTED"
)

// Valid reports whether s is one of the enumerated statuses.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold, PropertyStatusRented:
		return true
	}
	return false
}

// TableName은 테이블명을 명시적으로 지정
func (Property) TableName() string {
	return "properties"
}

// IsAvailable은 매물이 판매중인지 여부
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}
