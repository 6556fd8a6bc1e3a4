package models

import (
	"time"
)

// DefaultPreparationMinutes is used for categories that have no entry in the
// settings preparation_times map and no "default" entry either
const DefaultPreparationMinutes = 15

// DayHours holds the opening and closing time of one weekday, "HH:MM" format
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps a lowercase weekday name to its hours
type OpeningHours map[string]DayHours

// PreparationTimes maps a pizza category to its estimated preparation time
// in minutes. The reserved key "default" is the fallback for categories
// without their own entry.
type PreparationTimes map[string]int

// ForCategory returns the preparation estimate for one category, falling
// back to the "default" entry and then to DefaultPreparationMinutes.
func (p PreparationTimes) ForCategory(category string) time.Duration {
	if minutes, ok := p[category]; ok && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	if minutes, ok := p["default"]; ok && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return DefaultPreparationMinutes * time.Minute
}

// Settings is the singleton pizzeria configuration record
type Settings struct {
	ID               int              `json:"id" gorm:"primaryKey"`
	Name             string           `json:"name" gorm:"not null"`
	Description      string           `json:"description"`
	Address          string           `json:"address"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	LogoURL          string           `json:"logo_url"`
	OpeningHours     OpeningHours     `json:"opening_hours" gorm:"serializer:json"`
	PreparationTimes PreparationTimes `json:"preparation_times" gorm:"serializer:json"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
