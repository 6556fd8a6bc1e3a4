package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order. The literal values are
// what gets persisted and served over the API.
type OrderStatus string

const (
	// StatusPending is the initial state of every created order
	StatusPending OrderStatus = "en_attente"
	// StatusConfirmed means the pizzeria accepted the order
	StatusConfirmed OrderStatus = "confirmee"
	// StatusPreparing means the kitchen started working on the order
	StatusPreparing OrderStatus = "en_preparation"
	// StatusReady means the order is ready for pickup
	StatusReady OrderStatus = "prete"
	// StatusPickedUp is the terminal state
	StatusPickedUp OrderStatus = "recuperee"
)

// Valid reports whether s is one of the five known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusPickedUp:
		return true
	}
	return false
}

// Order is a customer order. Orders are created only through the order
// service and mutated only through its lifecycle transitions; each lifecycle
// timestamp is written exactly once, by the transition that owns it.
type Order struct {
	ID               int         `json:"id" gorm:"primaryKey"`
	UserID           string      `json:"user_id" gorm:"index;not null"`
	Status           OrderStatus `json:"status" gorm:"not null"`
	Total            Cents       `json:"total"`
	Items            []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time   `json:"created_at"`
	ConfirmedAt      *time.Time  `json:"confirmed_at"`
	PreparationAt    *time.Time  `json:"preparation_at"`
	ReadyAt          *time.Time  `json:"ready_at"`
	PickedUpAt       *time.Time  `json:"picked_up_at"`
	EstimatedReadyAt *time.Time  `json:"estimated_ready_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem is one pizza line in an order. UnitPrice is the catalog price
// captured at order time and never changes afterwards, regardless of later
// catalog updates.
type OrderItem struct {
	ID                 int              `json:"id" gorm:"primaryKey"`
	OrderID            int              `json:"order_id" gorm:"index"`
	PizzaID            int              `json:"pizza_id" gorm:"not null"`
	Size               Size             `json:"size" gorm:"not null"`
	Quantity           int              `json:"quantity" gorm:"not null"`
	UnitPrice          Cents            `json:"unit_price"`
	RemovedIngredients []string         `json:"removed_ingredients" gorm:"serializer:json"`
	Extras             []OrderItemExtra `json:"extras" gorm:"foreignKey:OrderItemID"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// OrderItemExtra is one extra attached to an order item, with its own
// snapshot price
type OrderItemExtra struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	OrderItemID int       `json:"order_item_id" gorm:"index"`
	ExtraID     int       `json:"extra_id" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   Cents     `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateOrderRequest is the payload a client submits to create an order
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemRequest is one requested pizza line
type OrderItemRequest struct {
	PizzaID            int                 `json:"pizza_id" binding:"required"`
	Size               Size                `json:"size" binding:"required"`
	Quantity           int                 `json:"quantity" binding:"required"`
	RemovedIngredients []string            `json:"removed_ingredients"`
	Extras             []OrderExtraRequest `json:"extras"`
}

// OrderExtraRequest is one requested extra on an item
type OrderExtraRequest struct {
	ExtraID  int `json:"extra_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required"`
}
