package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// respondDomainError maps a domain error kind to an HTTP status and a
// standardized error body. Unknown errors (storage failures included) become
// a 500 without leaking the cause.
func respondDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, err.Error()))
	case errors.Is(err, models.ErrEmptyOrder):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeEmptyOrder, err.Error()))
	case errors.Is(err, models.ErrCatalogMismatch):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeCatalogMismatch, err.Error()))
	case errors.Is(err, models.ErrInvalidIngredientRemoval):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeInvalidIngredient, err.Error()))
	case errors.Is(err, models.ErrInvalidQuantity):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeInvalidQuantity, err.Error()))
	case errors.Is(err, models.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrCodeInvalidTransition, err.Error()))
	case errors.Is(err, models.ErrConflict):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrCodeConflict, err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrCodeInternalServer, "Internal server error"))
	}
}
