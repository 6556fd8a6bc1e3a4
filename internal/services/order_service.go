package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// OrderRepository is the persistence port consumed by the order service
type OrderRepository interface {
	// LoadOrder retrieves an order with its items and extras
	LoadOrder(ctx context.Context, id int) (*models.Order, error)
	// SaveNewOrder persists a new order together with its items and extras
	// in one atomic operation
	SaveNewOrder(ctx context.Context, order *models.Order) error
	// UpdateOrderStatus moves the order from expected to next and sets the
	// given timestamp columns, all in one conditional update. It fails with
	// models.ErrConflict when the stored status no longer equals expected,
	// so two concurrent transitions can never both succeed.
	UpdateOrderStatus(ctx context.Context, id int, expected, next models.OrderStatus, stamps map[string]time.Time) error
}

// OrderService drives orders through their lifecycle:
//
//	en_attente -> confirmee -> en_preparation -> prete -> recuperee
//
// Every transition is strictly forward and guarded by a compare-and-set on
// the stored status. There is no cancellation state.
type OrderService interface {
	// Create validates and prices a new order and persists it as pending
	Create(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error)
	// Confirm accepts a pending order and computes its pickup estimate
	Confirm(ctx context.Context, id int) (*models.Order, error)
	// StartPreparation moves a confirmed order to the kitchen
	StartPreparation(ctx context.Context, id int) (*models.Order, error)
	// MarkReady flags a preparing order as ready for pickup
	MarkReady(ctx context.Context, id int) (*models.Order, error)
	// PickUp closes a ready order
	PickUp(ctx context.Context, id int) (*models.Order, error)
	// GetOrder retrieves an order by its ID
	GetOrder(ctx context.Context, id int) (*models.Order, error)
}

type orderService struct {
	repo     OrderRepository
	catalog  CatalogService
	settings SettingsService
	now      func() time.Time
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(repo OrderRepository, catalog CatalogService, settings SettingsService) OrderService {
	return &orderService{
		repo:     repo,
		catalog:  catalog,
		settings: settings,
		now:      time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := ValidateOrder(req, snap); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		pizza := snap.Pizzas[itemReq.PizzaID]
		unit, _, err := PriceItem(&pizza, itemReq.Size, itemReq.Quantity)
		if err != nil {
			return nil, err
		}

		item := models.OrderItem{
			PizzaID:            itemReq.PizzaID,
			Size:               itemReq.Size,
			Quantity:           itemReq.Quantity,
			UnitPrice:          unit,
			RemovedIngredients: itemReq.RemovedIngredients,
		}
		for _, extraReq := range itemReq.Extras {
			extra := snap.Extras[extraReq.ExtraID]
			extraUnit, _, err := PriceExtra(&extra, extraReq.Quantity)
			if err != nil {
				return nil, err
			}
			item.Extras = append(item.Extras, models.OrderItemExtra{
				ExtraID:   extraReq.ExtraID,
				Quantity:  extraReq.Quantity,
				UnitPrice: extraUnit,
			})
		}
		items = append(items, item)
	}

	order := &models.Order{
		UserID:    userID,
		Status:    models.StatusPending,
		Total:     PriceOrder(items),
		Items:     items,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveNewOrder(ctx, order); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
		"items":    len(order.Items),
	}).Info("Order created")
	return order, nil
}

func (s *orderService) Confirm(ctx context.Context, id int) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusPending, models.StatusConfirmed,
		func(order *models.Order, now time.Time) (map[string]time.Time, error) {
			eta, err := s.estimateReady(ctx, order, now)
			if err != nil {
				return nil, err
			}
			order.ConfirmedAt = &now
			order.EstimatedReadyAt = &eta
			return map[string]time.Time{"confirmed_at": now, "estimated_ready_at": eta}, nil
		})
}

func (s *orderService) StartPreparation(ctx context.Context, id int) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusConfirmed, models.StatusPreparing,
		func(order *models.Order, now time.Time) (map[string]time.Time, error) {
			order.PreparationAt = &now
			return map[string]time.Time{"preparation_at": now}, nil
		})
}

func (s *orderService) MarkReady(ctx context.Context, id int) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusPreparing, models.StatusReady,
		func(order *models.Order, now time.Time) (map[string]time.Time, error) {
			order.ReadyAt = &now
			return map[string]time.Time{"ready_at": now}, nil
		})
}

func (s *orderService) PickUp(ctx context.Context, id int) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusReady, models.StatusPickedUp,
		func(order *models.Order, now time.Time) (map[string]time.Time, error) {
			order.PickedUpAt = &now
			return map[string]time.Time{"picked_up_at": now}, nil
		})
}

func (s *orderService) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return s.repo.LoadOrder(ctx, id)
}

// transition applies one lifecycle step. The predecessor check here gives a
// precise error for plainly wrong calls; the repository compare-and-set is
// what actually guarantees that two concurrent attempts cannot both apply.
func (s *orderService) transition(
	ctx context.Context,
	id int,
	from, to models.OrderStatus,
	stamp func(order *models.Order, now time.Time) (map[string]time.Time, error),
) (*models.Order, error) {
	order, err := s.repo.LoadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: cannot move order %d from %s to %s",
			models.ErrInvalidTransition, id, order.Status, to)
	}

	now := s.now()
	stamps, err := stamp(order, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, from, to, stamps); err != nil {
		return nil, err
	}

	order.Status = to
	order.UpdatedAt = now
	log.WithFields(log.Fields{
		"order_id": id,
		"from":     from,
		"to":       to,
	}).Info("Order transitioned")
	return order, nil
}

// estimateReady computes the pickup estimate at confirmation time. The
// per-category estimates come from the settings record; with several
// categories in one order the slowest category bounds readiness, so the
// combination rule is the maximum, not the sum. Pizzas deactivated since the
// order was placed still contribute their category.
func (s *orderService) estimateReady(ctx context.Context, order *models.Order, now time.Time) (time.Time, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return time.Time{}, err
	}

	ids := make([]int, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.PizzaID)
	}
	categories, err := s.catalog.PizzaCategories(ctx, ids)
	if err != nil {
		return time.Time{}, err
	}

	var longest time.Duration
	seen := make(map[string]bool)
	for _, item := range order.Items {
		category := categories[item.PizzaID]
		if seen[category] {
			continue
		}
		seen[category] = true
		if d := settings.PreparationTimes.ForCategory(category); d > longest {
			longest = d
		}
	}
	if longest == 0 {
		longest = models.DefaultPreparationMinutes * time.Minute
	}
	return now.Add(longest), nil
}
