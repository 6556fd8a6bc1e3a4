package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// OrderStore is the gorm-backed order repository. SaveNewOrder relies on
// gorm writing the order and its nested associations inside one transaction;
// UpdateOrderStatus is a single conditional UPDATE so a lost race surfaces
// as zero affected rows instead of a double-applied transition.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates a new OrderStore
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) LoadOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Extras").
		Preload("Items").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, models.NewStorageError("load order", err)
	}
	return &order, nil
}

func (s *OrderStore) SaveNewOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return models.NewStorageError("save order", err)
	}
	return nil
}

func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int, expected, next models.OrderStatus, stamps map[string]time.Time) error {
	updates := map[string]interface{}{"status": next}
	for column, ts := range stamps {
		updates[column] = ts
	}

	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return models.NewStorageError("update order status", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows: either the order is gone or another transition won the
	// race. Re-read to tell the two apart.
	var current models.Order
	err := s.db.WithContext(ctx).Select("id", "status").First(&current, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order %d", models.ErrNotFound, id)
	}
	if err != nil {
		return models.NewStorageError("reload order status", err)
	}
	return fmt.Errorf("%w: expected %s, found %s", models.ErrConflict, expected, current.Status)
}
