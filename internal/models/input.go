package models

import "fmt"

// ValidationError describes a rejected create or patch payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PropertyInput is the create payload. ID and timestamps are assigned by the
// store, never by the caller. Price and Area are pointers so that a missing
// field can be told apart from an explicit zero.
type PropertyInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Price       *int64         `json:"price"`
	Area        *float64       `json:"area"`
	Type        PropertyType   `json:"type"`
	Status      PropertyStatus `json:"status"`
	Images      []string       `json:"images"`
}

// Validate checks required fields and enum membership.
func (in *PropertyInput) Validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "required"}
	}
	if in.Address == "" {
		return &ValidationError{Field: "address", Message: "required"}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", in.Type)}
	}
	if in.Price == nil {
		return &ValidationError{Field: "price", Message: "required"}
	}
	if *in.Price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if in.Area == nil {
		return &ValidationError{Field: "area", Message: "required"}
	}
	if *in.Area < 0 {
		return &ValidationError{Field: "area", Message: "must not be negative"}
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return nil
}

// ToProperty builds a Property from the input. Status defaults to AVAILABLE
// when absent. ID and timestamps are left for the store to fill.
func (in *PropertyInput) ToProperty() Property {
	status := in.Status
	if status == "" {
		status = PropertyStatusAvailable
	}
	return Property{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Price:       *in.Price,
		Area:        *in.Area,
		Type:        in.Type,
		Status:      status,
		Images:      append([]string(nil), in.Images...),
	}
}

// PropertyPatch is an explicit partial-update payload: only non-nil fields
// are merged. ID and CreatedAt have no field here, so immutable attributes
// supplied by a client are dropped during decoding rather than applied.
type PropertyPatch struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Address     *string         `json:"address"`
	Price       *int64          `json:"price"`
	Area        *float64        `json:"area"`
	Type        *PropertyType   `json:"type"`
	Status      *PropertyStatus `json:"status"`
	Images      *[]string       `json:"images"`
}

// Validate checks each supplied field.
func (p *PropertyPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if p.Address != nil && *p.Address == "" {
		return &ValidationError{Field: "address", Message: "must not be empty"}
	}
	if p.Price != nil && *p.Price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if p.Area != nil && *p.Area < 0 {
		return &ValidationError{Field: "area", Message: "must not be negative"}
	}
	if p.Type != nil && !p.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", *p.Type)}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *p.Status)}
	}
	return nil
}

// Apply merges the supplied fields into prop. Timestamps are the store's
// responsibility.
func (p *PropertyPatch) Apply(prop *Property) {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.Area != nil {
		prop.Area = *p.Area
	}
	if p.Type != nil {
		prop.Type = *p.Type
	}
	if p.Status != nil {
		prop.Status = *p.Status
	}
	if p.Images != nil {
		prop.Images = append([]string(nil), (*p.Images)...)
	}
}
