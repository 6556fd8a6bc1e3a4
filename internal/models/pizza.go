package models

import (
	"time"
)

// Cents is a money amount in currency minor units. All price arithmetic in
// the service is integer arithmetic on this type so repeated computation of
// the same order always yields the same total.
type Cents int64

// Size is the closed set of pizza sizes a customer can order
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Valid reports whether s is one of the three known sizes
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Pizza represents a pizza on the menu with per-size prices
type Pizza struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category" gorm:"index"`
	Vegetarian  bool      `json:"vegetarian"`
	Ingredients []string  `json:"ingredients" gorm:"serializer:json"`
	PriceSmall  Cents     `json:"price_small"`
	PriceMedium Cents     `json:"price_medium"`
	PriceLarge  Cents     `json:"price_large"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriceFor returns the price for the given size. The second return value is
// false when the size is not one of the known sizes.
func (p *Pizza) PriceFor(size Size) (Cents, bool) {
	switch size {
	case SizeSmall:
		return p.PriceSmall, true
	case SizeMedium:
		return p.PriceMedium, true
	case SizeLarge:
		return p.PriceLarge, true
	}
	return 0, false
}

// HasIngredient reports whether name is part of the pizza's ingredient list
func (p *Pizza) HasIngredient(name string) bool {
	for _, ing := range p.Ingredients {
		if ing == name {
			return true
		}
	}
	return false
}

// Extra represents an add-on (extra cheese, dips, drinks...) that can be
// attached to an order item
type Extra struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Price     Cents     `json:"price"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
