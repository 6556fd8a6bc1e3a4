package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/storage"
)

// CatalogService provides read access to the orderable catalog
type CatalogService interface {
	// GetActivePizzas retrieves all active pizzas
	GetActivePizzas(ctx context.Context) ([]models.Pizza, error)
	// GetActivePizza retrieves an active pizza by its ID
	GetActivePizza(ctx context.Context, id int) (*models.Pizza, error)
	// GetActiveExtras retrieves all active extras
	GetActiveExtras(ctx context.Context) ([]models.Extra, error)
	// GetActiveExtra retrieves an active extra by its ID
	GetActiveExtra(ctx context.Context, id int) (*models.Extra, error)
	// Snapshot returns one consistent view of the whole active catalog for
	// an order-building operation
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)
	// PizzaCategories resolves pizza ids to their categories, including
	// pizzas that have been deactivated since they were ordered
	PizzaCategories(ctx context.Context, ids []int) (map[int]string, error)
}

type catalogService struct {
	db    *gorm.DB
	cache *storage.CatalogCache
}

// NewCatalogService creates a new instance of CatalogService. cache may be
// nil, in which case every read goes to the database.
func NewCatalogService(db *gorm.DB, cache *storage.CatalogCache) CatalogService {
	return &catalogService{db: db, cache: cache}
}

// loadActive reads the full active catalog, preferring the cache. Both
// tables are read inside one transaction so a mid-flight catalog update can
// never produce a partial view.
func (s *catalogService) loadActive(ctx context.Context) ([]models.Pizza, []models.Extra, error) {
	if s.cache != nil {
		if pizzas, extras, ok := s.cache.Get(ctx); ok {
			return pizzas, extras, nil
		}
	}

	var pizzas []models.Pizza
	var extras []models.Extra
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("active = ?", true).Order("id").Find(&pizzas).Error; err != nil {
			return err
		}
		return tx.Where("active = ?", true).Order("id").Find(&extras).Error
	})
	if err != nil {
		return nil, nil, models.NewStorageError("load active catalog", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, pizzas, extras)
	}
	return pizzas, extras, nil
}

func (s *catalogService) GetActivePizzas(ctx context.Context) ([]models.Pizza, error) {
	pizzas, _, err := s.loadActive(ctx)
	return pizzas, err
}

func (s *catalogService) GetActivePizza(ctx context.Context, id int) (*models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.WithContext(ctx).Where("active = ?", true).First(&pizza, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pizza %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, models.NewStorageError("load pizza", err)
	}
	return &pizza, nil
}

func (s *catalogService) GetActiveExtras(ctx context.Context) ([]models.Extra, error) {
	_, extras, err := s.loadActive(ctx)
	return extras, err
}

func (s *catalogService) GetActiveExtra(ctx context.Context, id int) (*models.Extra, error) {
	var extra models.Extra
	err := s.db.WithContext(ctx).Where("active = ?", true).First(&extra, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: extra %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, models.NewStorageError("load extra", err)
	}
	return &extra, nil
}

func (s *catalogService) Snapshot(ctx context.Context) (*CatalogSnapshot, error) {
	pizzas, extras, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	snap := &CatalogSnapshot{
		Pizzas: make(map[int]models.Pizza, len(pizzas)),
		Extras: make(map[int]models.Extra, len(extras)),
	}
	for _, pizza := range pizzas {
		snap.Pizzas[pizza.ID] = pizza
	}
	for _, extra := range extras {
		snap.Extras[extra.ID] = extra
	}
	return snap, nil
}

func (s *catalogService) PizzaCategories(ctx context.Context, ids []int) (map[int]string, error) {
	var pizzas []models.Pizza
	if err := s.db.WithContext(ctx).Select("id", "category").Where("id IN ?", ids).Find(&pizzas).Error; err != nil {
		return nil, models.NewStorageError("load pizza categories", err)
	}

	categories := make(map[int]string, len(pizzas))
	for _, pizza := range pizzas {
		categories[pizza.ID] = pizza.Category
	}
	return categories, nil
}
