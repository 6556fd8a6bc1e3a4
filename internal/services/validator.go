package services

import (
	"fmt"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// CatalogSnapshot is a consistent view of the active catalog taken for one
// order-building operation. It only ever contains active entries.
type CatalogSnapshot struct {
	Pizzas map[int]models.Pizza
	Extras map[int]models.Extra
}

// ActivePizza looks up an active pizza in the snapshot
func (s *CatalogSnapshot) ActivePizza(id int) (models.Pizza, bool) {
	pizza, ok := s.Pizzas[id]
	return pizza, ok
}

// ActiveExtra looks up an active extra in the snapshot
func (s *CatalogSnapshot) ActiveExtra(id int) (models.Extra, bool) {
	extra, ok := s.Extras[id]
	return extra, ok
}

// ValidateOrder checks an order request against a catalog snapshot. The
// rules run in a fixed order and the first failure wins:
//
//  1. the order must contain at least one item
//  2. every pizza id must resolve to an active pizza with a price for the
//     requested size
//  3. removed ingredients must all be on the referenced pizza
//  4. every item and extra quantity must be at least 1
//  5. every extra id must resolve to an active extra
//
// The function is pure: no side effects, no persistence access.
func ValidateOrder(req models.CreateOrderRequest, snap *CatalogSnapshot) error {
	if len(req.Items) == 0 {
		return models.ErrEmptyOrder
	}

	for _, item := range req.Items {
		pizza, ok := snap.ActivePizza(item.PizzaID)
		if !ok {
			return fmt.Errorf("%w: pizza %d is not available", models.ErrCatalogMismatch, item.PizzaID)
		}
		if _, ok := pizza.PriceFor(item.Size); !ok {
			return fmt.Errorf("%w: unknown size %q for pizza %d", models.ErrCatalogMismatch, item.Size, item.PizzaID)
		}
	}

	for _, item := range req.Items {
		pizza := snap.Pizzas[item.PizzaID]
		for _, removed := range item.RemovedIngredients {
			if !pizza.HasIngredient(removed) {
				return fmt.Errorf("%w: %q is not on pizza %d", models.ErrInvalidIngredientRemoval, removed, item.PizzaID)
			}
		}
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item quantity %d for pizza %d", models.ErrInvalidQuantity, item.Quantity, item.PizzaID)
		}
		for _, extra := range item.Extras {
			if extra.Quantity < 1 {
				return fmt.Errorf("%w: extra quantity %d for extra %d", models.ErrInvalidQuantity, extra.Quantity, extra.ExtraID)
			}
		}
	}

	for _, item := range req.Items {
		for _, extra := range item.Extras {
			if _, ok := snap.ActiveExtra(extra.ExtraID); !ok {
				return fmt.Errorf("%w: extra %d is not available", models.ErrCatalogMismatch, extra.ExtraID)
			}
		}
	}

	return nil
}
