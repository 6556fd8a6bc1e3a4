package services

import (
	"fmt"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// Pricing is deliberately a set of pure functions: prices depend only on the
// catalog entries and quantities passed in, never on persistence state, so a
// total recomputed from the same inputs is always identical.

// PriceItem computes the unit price and line total for quantity pizzas of
// the given size. Removed ingredients do not change the price.
func PriceItem(pizza *models.Pizza, size models.Size, quantity int) (models.Cents, models.Cents, error) {
	if pizza == nil || !pizza.Active {
		return 0, 0, fmt.Errorf("%w: pizza unavailable", models.ErrCatalogMismatch)
	}
	if quantity < 1 {
		return 0, 0, fmt.Errorf("%w: got %d", models.ErrInvalidQuantity, quantity)
	}
	unit, ok := pizza.PriceFor(size)
	if !ok {
		return 0, 0, fmt.Errorf("%w: pizza %d has no price for size %q", models.ErrCatalogMismatch, pizza.ID, size)
	}
	return unit, unit * models.Cents(quantity), nil
}

// PriceExtra computes the unit price and line total for quantity units of an
// extra
func PriceExtra(extra *models.Extra, quantity int) (models.Cents, models.Cents, error) {
	if extra == nil || !extra.Active {
		return 0, 0, fmt.Errorf("%w: extra unavailable", models.ErrCatalogMismatch)
	}
	if quantity < 1 {
		return 0, 0, fmt.Errorf("%w: got %d", models.ErrInvalidQuantity, quantity)
	}
	return extra.Price, extra.Price * models.Cents(quantity), nil
}

// PriceOrder sums the line totals of already-priced order items and their
// extras. Items carry their snapshot unit prices, so the result does not
// depend on the current catalog.
func PriceOrder(items []models.OrderItem) models.Cents {
	var total models.Cents
	for _, item := range items {
		total += item.UnitPrice * models.Cents(item.Quantity)
		for _, extra := range item.Extras {
			total += extra.UnitPrice * models.Cents(extra.Quantity)
		}
	}
	return total
}
