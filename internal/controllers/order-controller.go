package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/services"
)

// OrderController handles HTTP requests for orders and their lifecycle
type OrderController interface {
	// CreateOrder creates a new order for the authenticated user
	CreateOrder(ctx *gin.Context)
	// GetOrder retrieves an order by its ID
	GetOrder(ctx *gin.Context)
	// ConfirmOrder confirms a pending order
	ConfirmOrder(ctx *gin.Context)
	// StartPreparation moves a confirmed order to preparation
	StartPreparation(ctx *gin.Context)
	// MarkReady flags a preparing order as ready
	MarkReady(ctx *gin.Context)
	// PickUpOrder closes a ready order
	PickUpOrder(ctx *gin.Context)
}

type orderController struct {
	orders services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(orders services.OrderService) OrderController {
	return &orderController{orders: orders}
}

// CreateOrder godoc
// @Summary Create a new order
// @Description Validate, price and create a new order for the authenticated user
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order request"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders [post]
func (c *orderController) CreateOrder(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	order, err := c.orders.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetOrder godoc
// @Summary Get an order
// @Description Get an order by its ID. Clients can only read their own orders.
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id} [get]
func (c *orderController) GetOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.orders.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}

	// Staff see every order, clients only their own
	role, _ := ctx.Get("userRole")
	if role == "client" {
		userID, ok := authenticatedUserID(ctx)
		if !ok {
			return
		}
		if order.UserID != userID {
			ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "You can only read your own orders"))
			return
		}
	}
	ctx.JSON(http.StatusOK, order)
}

// ConfirmOrder godoc
// @Summary Confirm a pending order
// @Description Confirm a pending order and compute its pickup estimate
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/confirm [post]
func (c *orderController) ConfirmOrder(ctx *gin.Context) {
	c.applyTransition(ctx, c.orders.Confirm)
}

// StartPreparation godoc
// @Summary Start preparing a confirmed order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/preparation [post]
func (c *orderController) StartPreparation(ctx *gin.Context) {
	c.applyTransition(ctx, c.orders.StartPreparation)
}

// MarkReady godoc
// @Summary Mark a preparing order as ready
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/ready [post]
func (c *orderController) MarkReady(ctx *gin.Context) {
	c.applyTransition(ctx, c.orders.MarkReady)
}

// PickUpOrder godoc
// @Summary Mark a ready order as picked up
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/pickup [post]
func (c *orderController) PickUpOrder(ctx *gin.Context) {
	c.applyTransition(ctx, c.orders.PickUp)
}

// applyTransition runs one lifecycle operation against the :id order
func (c *orderController) applyTransition(ctx *gin.Context, op func(context.Context, int) (*models.Order, error)) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	order, err := op(ctx.Request.Context(), id)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// authenticatedUserID reads the user id the JWT middleware stored in the
// context
func authenticatedUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "User not authenticated"))
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "Invalid user identity"))
		return "", false
	}
	return userID, true
}
