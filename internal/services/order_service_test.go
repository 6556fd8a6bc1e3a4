package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// fakeOrderRepo is an in-memory OrderRepository with the same
// compare-and-set semantics as the gorm store, which makes the concurrency
// properties testable without a database.
type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID int
	orders map[int]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int]*models.Order)}
}

func (r *fakeOrderRepo) LoadOrder(_ context.Context, id int) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", models.ErrNotFound, id)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) SaveNewOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id int, expected, next models.OrderStatus, stamps map[string]time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", models.ErrNotFound, id)
	}
	if order.Status != expected {
		return fmt.Errorf("%w: expected %s, found %s", models.ErrConflict, expected, order.Status)
	}
	order.Status = next
	for column, ts := range stamps {
		ts := ts
		switch column {
		case "confirmed_at":
			order.ConfirmedAt = &ts
		case "preparation_at":
			order.PreparationAt = &ts
		case "ready_at":
			order.ReadyAt = &ts
		case "picked_up_at":
			order.PickedUpAt = &ts
		case "estimated_ready_at":
			order.EstimatedReadyAt = &ts
		}
	}
	return nil
}

type fakeCatalog struct {
	snap       *CatalogSnapshot
	categories map[int]string
}

func (c *fakeCatalog) GetActivePizzas(context.Context) ([]models.Pizza, error) {
	pizzas := make([]models.Pizza, 0, len(c.snap.Pizzas))
	for _, p := range c.snap.Pizzas {
		pizzas = append(pizzas, p)
	}
	return pizzas, nil
}

func (c *fakeCatalog) GetActivePizza(_ context.Context, id int) (*models.Pizza, error) {
	pizza, ok := c.snap.Pizzas[id]
	if !ok {
		return nil, fmt.Errorf("%w: pizza %d", models.ErrNotFound, id)
	}
	return &pizza, nil
}

func (c *fakeCatalog) GetActiveExtras(context.Context) ([]models.Extra, error) {
	extras := make([]models.Extra, 0, len(c.snap.Extras))
	for _, e := range c.snap.Extras {
		extras = append(extras, e)
	}
	return extras, nil
}

func (c *fakeCatalog) GetActiveExtra(_ context.Context, id int) (*models.Extra, error) {
	extra, ok := c.snap.Extras[id]
	if !ok {
		return nil, fmt.Errorf("%w: extra %d", models.ErrNotFound, id)
	}
	return &extra, nil
}

func (c *fakeCatalog) Snapshot(context.Context) (*CatalogSnapshot, error) {
	return c.snap, nil
}

func (c *fakeCatalog) PizzaCategories(_ context.Context, ids []int) (map[int]string, error) {
	categories := make(map[int]string)
	for _, id := range ids {
		if category, ok := c.categories[id]; ok {
			categories[id] = category
		}
	}
	return categories, nil
}

type fakeSettings struct {
	settings models.Settings
}

func (s *fakeSettings) GetSettings(context.Context) (*models.Settings, error) {
	copied := s.settings
	return &copied, nil
}

func newTestOrderService() (OrderService, *fakeOrderRepo) {
	repo := newFakeOrderRepo()
	catalog := &fakeCatalog{
		snap: &CatalogSnapshot{
			Pizzas: map[int]models.Pizza{
				1: {ID: 1, Name: "Margherita", Category: "classiques",
					Ingredients: []string{"cheese", "basil"},
					PriceSmall:  800, PriceMedium: 1000, PriceLarge: 1200, Active: true},
				2: {ID: 2, Name: "Quattro Formaggi", Category: "speciales",
					Ingredients: []string{"mozzarella", "gorgonzola"},
					PriceSmall:  1050, PriceMedium: 1250, PriceLarge: 1550, Active: true},
			},
			Extras: map[int]models.Extra{
				1: {ID: 1, Name: "Garlic dip", Price: 150, Active: true},
			},
		},
		categories: map[int]string{1: "classiques", 2: "speciales"},
	}
	settings := &fakeSettings{
		settings: models.Settings{
			Name: "Test Pizzeria",
			PreparationTimes: models.PreparationTimes{
				"classiques": 15,
				"speciales":  20,
				"default":    15,
			},
		},
	}
	return NewOrderService(repo, catalog, settings), repo
}

const testUserID = "2b1f8c70-52a4-4f3e-9c43-8a2f07f7b001"

func twoItemRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Items: []models.OrderItemRequest{
			{
				PizzaID:            1,
				Size:               models.SizeMedium,
				Quantity:           2,
				RemovedIngredients: []string{"basil"},
				Extras:             []models.OrderExtraRequest{{ExtraID: 1, Quantity: 1}},
			},
			{PizzaID: 2, Size: models.SizeLarge, Quantity: 1},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, repo := newTestOrderService()

	order, err := svc.Create(context.Background(), testUserID, twoItemRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, testUserID, order.UserID)
	// 2*1000 + 1*150 + 1*1550
	assert.Equal(t, models.Cents(3700), order.Total)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Nil(t, order.ConfirmedAt)
	assert.Nil(t, order.PreparationAt)
	assert.Nil(t, order.ReadyAt)
	assert.Nil(t, order.PickedUpAt)
	assert.Nil(t, order.EstimatedReadyAt)

	require.Len(t, order.Items, 2)
	assert.Equal(t, models.Cents(1000), order.Items[0].UnitPrice)
	assert.Equal(t, []string{"basil"}, order.Items[0].RemovedIngredients)
	require.Len(t, order.Items[0].Extras, 1)
	assert.Equal(t, models.Cents(150), order.Items[0].Extras[0].UnitPrice)

	stored, err := repo.LoadOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestCreateOrderInvalidRequestPersistsNothing(t *testing.T) {
	svc, repo := newTestOrderService()

	_, err := svc.Create(context.Background(), testUserID, models.CreateOrderRequest{})
	assert.ErrorIs(t, err, models.ErrEmptyOrder)

	req := twoItemRequest()
	req.Items[0].RemovedIngredients = []string{"pepperoni"}
	_, err = svc.Create(context.Background(), testUserID, req)
	assert.ErrorIs(t, err, models.ErrInvalidIngredientRemoval)

	assert.Empty(t, repo.orders)
}

func TestLifecycleHappyPath(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, twoItemRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)
	require.NotNil(t, confirmed.EstimatedReadyAt)
	// Two categories (15 and 20 minutes): the estimate uses the slower one
	assert.Equal(t, 20*time.Minute, confirmed.EstimatedReadyAt.Sub(*confirmed.ConfirmedAt))

	preparing, err := svc.StartPreparation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, preparing.Status)
	require.NotNil(t, preparing.PreparationAt)

	ready, err := svc.MarkReady(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, ready.Status)
	require.NotNil(t, ready.ReadyAt)

	done, err := svc.PickUp(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPickedUp, done.Status)
	require.NotNil(t, done.PickedUpAt)

	final, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)

	// Timestamps follow state-entry order
	stamps := []time.Time{
		final.CreatedAt,
		*final.ConfirmedAt,
		*final.PreparationAt,
		*final.ReadyAt,
		*final.PickedUpAt,
	}
	for i := 1; i < len(stamps); i++ {
		assert.False(t, stamps[i].Before(stamps[i-1]),
			"timestamp %d precedes timestamp %d", i, i-1)
	}
}

func TestTransitionsRejectWrongPredecessor(t *testing.T) {
	svc, repo := newTestOrderService()
	ctx := context.Background()

	ops := map[string]struct {
		call func(int) (*models.Order, error)
		from models.OrderStatus
	}{
		"confirm":          {func(id int) (*models.Order, error) { return svc.Confirm(ctx, id) }, models.StatusPending},
		"startPreparation": {func(id int) (*models.Order, error) { return svc.StartPreparation(ctx, id) }, models.StatusConfirmed},
		"markReady":        {func(id int) (*models.Order, error) { return svc.MarkReady(ctx, id) }, models.StatusPreparing},
		"pickUp":           {func(id int) (*models.Order, error) { return svc.PickUp(ctx, id) }, models.StatusReady},
	}
	states := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusPickedUp,
	}

	for name, op := range ops {
		for _, state := range states {
			if state == op.from {
				continue
			}
			t.Run(fmt.Sprintf("%s from %s", name, state), func(t *testing.T) {
				order := &models.Order{UserID: testUserID, Status: state}
				require.NoError(t, repo.SaveNewOrder(ctx, order))

				_, err := op.call(order.ID)
				assert.ErrorIs(t, err, models.ErrInvalidTransition)

				stored, err := repo.LoadOrder(ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, state, stored.Status, "status must not change on a failed transition")
			})
		}
	}
}

func TestTransitionNotFound(t *testing.T) {
	svc, _ := newTestOrderService()
	_, err := svc.Confirm(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConcurrentConfirmExactlyOneWins(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()

	order, err := svc.Create(ctx, testUserID, twoItemRequest())
	require.NoError(t, err)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Confirm(ctx, order.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, models.ErrConflict) || errors.Is(err, models.ErrInvalidTransition):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one confirm must win")
	assert.Equal(t, attempts-1, conflicts)
}
