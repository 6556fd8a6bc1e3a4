package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/services"
)

// CatalogController handles HTTP requests for the public catalog
type CatalogController interface {
	// GetPizzas retrieves all active pizzas
	GetPizzas(ctx *gin.Context)
	// GetPizzaByID retrieves an active pizza by its ID
	GetPizzaByID(ctx *gin.Context)
	// GetExtras retrieves all active extras
	GetExtras(ctx *gin.Context)
	// GetExtraByID retrieves an active extra by its ID
	GetExtraByID(ctx *gin.Context)
	// GetSettings retrieves the pizzeria settings
	GetSettings(ctx *gin.Context)
}

type catalogController struct {
	catalog  services.CatalogService
	settings services.SettingsService
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(catalog services.CatalogService, settings services.SettingsService) CatalogController {
	return &catalogController{catalog: catalog, settings: settings}
}

// GetPizzas godoc
// @Summary Get active pizzas
// @Description Get the list of pizzas that can currently be ordered
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *catalogController) GetPizzas(ctx *gin.Context) {
	pizzas, err := c.catalog.GetActivePizzas(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single active pizza by its ID
// @Tags catalog
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (c *catalogController) GetPizzaByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	pizza, err := c.catalog.GetActivePizza(ctx.Request.Context(), id)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// GetExtras godoc
// @Summary Get active extras
// @Description Get the list of extras that can currently be ordered
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Extra
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/extras [get]
func (c *catalogController) GetExtras(ctx *gin.Context) {
	extras, err := c.catalog.GetActiveExtras(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, extras)
}

// GetExtraByID godoc
// @Summary Get extra by ID
// @Description Get a single active extra by its ID
// @Tags catalog
// @Produce json
// @Param id path int true "Extra ID"
// @Success 200 {object} models.Extra
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/extras/{id} [get]
func (c *catalogController) GetExtraByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	extra, err := c.catalog.GetActiveExtra(ctx.Request.Context(), id)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, extra)
}

// GetSettings godoc
// @Summary Get pizzeria settings
// @Description Get the pizzeria contact info, opening hours and preparation times
// @Tags catalog
// @Produce json
// @Success 200 {object} models.Settings
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/settings [get]
func (c *catalogController) GetSettings(ctx *gin.Context) {
	settings, err := c.settings.GetSettings(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, settings)
}

// parseIDParam reads the :id path parameter as an integer, answering 400 on
// a malformed value
func parseIDParam(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "Invalid ID format"))
		return 0, false
	}
	return id, true
}
