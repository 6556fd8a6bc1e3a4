package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

func testPizza() *models.Pizza {
	return &models.Pizza{
		ID:          1,
		Name:        "Margherita",
		Category:    "classiques",
		Ingredients: []string{"cheese", "basil"},
		PriceSmall:  800,
		PriceMedium: 1000,
		PriceLarge:  1200,
		Active:      true,
	}
}

func TestPriceItem(t *testing.T) {
	pizza := testPizza()

	unit, line, err := PriceItem(pizza, models.SizeMedium, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Cents(1000), unit)
	assert.Equal(t, models.Cents(2000), line)

	unit, line, err = PriceItem(pizza, models.SizeLarge, 3)
	require.NoError(t, err)
	assert.Equal(t, models.Cents(1200), unit)
	assert.Equal(t, models.Cents(3600), line)
}

func TestPriceItemInactivePizza(t *testing.T) {
	pizza := testPizza()
	pizza.Active = false

	_, _, err := PriceItem(pizza, models.SizeMedium, 1)
	assert.ErrorIs(t, err, models.ErrCatalogMismatch)

	_, _, err = PriceItem(nil, models.SizeMedium, 1)
	assert.ErrorIs(t, err, models.ErrCatalogMismatch)
}

func TestPriceItemInvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		_, _, err := PriceItem(testPizza(), models.SizeSmall, quantity)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestPriceItemUnknownSize(t *testing.T) {
	_, _, err := PriceItem(testPizza(), models.Size("family"), 1)
	assert.ErrorIs(t, err, models.ErrCatalogMismatch)
}

func TestPriceExtra(t *testing.T) {
	extra := &models.Extra{ID: 1, Name: "Garlic dip", Price: 150, Active: true}

	unit, line, err := PriceExtra(extra, 3)
	require.NoError(t, err)
	assert.Equal(t, models.Cents(150), unit)
	assert.Equal(t, models.Cents(450), line)

	extra.Active = false
	_, _, err = PriceExtra(extra, 1)
	assert.ErrorIs(t, err, models.ErrCatalogMismatch)

	extra.Active = true
	_, _, err = PriceExtra(extra, 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestPriceOrderSumsItemsAndExtras(t *testing.T) {
	items := []models.OrderItem{
		{
			PizzaID:   1,
			Quantity:  2,
			UnitPrice: 1000,
			Extras: []models.OrderItemExtra{
				{ExtraID: 1, Quantity: 2, UnitPrice: 150},
			},
		},
		{PizzaID: 2, Quantity: 1, UnitPrice: 1200},
	}

	// 2*1000 + 2*150 + 1*1200
	assert.Equal(t, models.Cents(3500), PriceOrder(items))
}

func TestPriceOrderDeterministic(t *testing.T) {
	items := []models.OrderItem{
		{PizzaID: 1, Quantity: 3, UnitPrice: 1099,
			Extras: []models.OrderItemExtra{{ExtraID: 2, Quantity: 7, UnitPrice: 149}}},
		{PizzaID: 2, Quantity: 11, UnitPrice: 1549},
	}

	first := PriceOrder(items)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, PriceOrder(items))
	}
}

func TestPriceOrderEmpty(t *testing.T) {
	assert.Equal(t, models.Cents(0), PriceOrder(nil))
}
