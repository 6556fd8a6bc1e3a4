package database

import (
	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// SeedIfEmpty populates an empty database with a starter catalog and the
// settings singleton. Prices are in cents.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Pizza{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}

	log.Info("Database is empty, seeding initial data")

	pizzas := []models.Pizza{
		{
			Name:        "Margherita",
			Description: "The classic",
			Category:    "classiques",
			Vegetarian:  true,
			Ingredients: []string{"tomato sauce", "mozzarella", "basil"},
			PriceSmall:  850,
			PriceMedium: 1050,
			PriceLarge:  1350,
			Active:      true,
		},
		{
			Name:        "Pepperoni",
			Description: "Tomato sauce, mozzarella and a double layer of pepperoni",
			Category:    "classiques",
			Ingredients: []string{"tomato sauce", "mozzarella", "pepperoni"},
			PriceSmall:  950,
			PriceMedium: 1150,
			PriceLarge:  1450,
			Active:      true,
		},
		{
			Name:        "Quattro Formaggi",
			Description: "Mozzarella, gorgonzola, parmesan and goat cheese",
			Category:    "speciales",
			Vegetarian:  true,
			Ingredients: []string{"mozzarella", "gorgonzola", "parmesan", "goat cheese"},
			PriceSmall:  1050,
			PriceMedium: 1250,
			PriceLarge:  1550,
			Active:      true,
		},
	}
	for _, pizza := range pizzas {
		if err := db.Create(&pizza).Error; err != nil {
			return err
		}
	}

	extras := []models.Extra{
		{Name: "Extra mozzarella", Price: 150, Active: true},
		{Name: "Garlic dip", Price: 100, Active: true},
		{Name: "Soda 33cl", Price: 250, Active: true},
	}
	for _, extra := range extras {
		if err := db.Create(&extra).Error; err != nil {
			return err
		}
	}

	settings := models.Settings{
		Name:    "La Bella Pizza",
		Address: "12 rue des Fours, 75011 Paris",
		Phone:   "+33 1 23 45 67 89",
		Email:   "contact@labellapizza.example",
		OpeningHours: models.OpeningHours{
			"monday":    {Open: "11:30", Close: "22:00"},
			"tuesday":   {Open: "11:30", Close: "22:00"},
			"wednesday": {Open: "11:30", Close: "22:00"},
			"thursday":  {Open: "11:30", Close: "22:00"},
			"friday":    {Open: "11:30", Close: "23:00"},
			"saturday":  {Open: "11:30", Close: "23:00"},
			"sunday":    {Open: "18:00", Close: "22:00"},
		},
		PreparationTimes: models.PreparationTimes{
			"classiques": 15,
			"speciales":  20,
			"default":    15,
		},
	}
	if err := db.Create(&settings).Error; err != nil {
		return err
	}

	log.Info("Database seeded successfully")
	return nil
}
