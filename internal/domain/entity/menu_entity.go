package entity

import "time"

// MenuItem is a catalog entry. Orders only ever read it.
type MenuItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Price        float64   `json:"price"`
	Availability bool      `json:"availability"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MenuItemPatch carries a partial update; nil fields are left untouched.
type MenuItemPatch struct {
	Name         *string
	Category     *string
	Price        *float64
	Availability *bool
	ImageURL     *string
}

// Apply copies the non-nil fields of p onto m.
func (p MenuItemPatch) Apply(m *MenuItem) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Availability != nil {
		m.Availability = *p.Availability
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
}
