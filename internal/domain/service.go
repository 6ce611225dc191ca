package domain

import "time"

// Category of a salon service
type Category string

const (
	CategoryHair    Category = "hair"
	CategoryNails   Category = "nails"
	CategorySkin    Category = "skin"
	CategoryMassage Category = "massage"
	CategoryOther   Category = "other"
)

// Categories lists every accepted category
var Categories = []Category{
	CategoryHair,
	CategoryNails,
	CategorySkin,
	CategoryMassage,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Service is a bookable offering. Bookings reference it by ID only.
type Service struct {
	ID              string
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	Category        Category
	Available       bool
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServicesFilter фильтр каталога услуг
type ServicesFilter struct {
	Category  *Category
	Available *bool
}
