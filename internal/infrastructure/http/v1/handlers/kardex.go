package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/domain/kardex"
	"quipu/internal/infrastructure/http/v1/dto"
)

// KardexHandler handles HTTP requests for the inventory movement ledger.
type KardexHandler struct {
	*BaseHandler
	service *kardex.Service
}

// NewKardexHandler creates a new kardex handler.
func NewKardexHandler(base *BaseHandler, service *kardex.Service) *KardexHandler {
	return &KardexHandler{BaseHandler: base, service: service}
}

// History handles GET /kardex/products/:id/movements.
func (h *KardexHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var period kardex.Period
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			period.From = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			period.To = &parsed
		}
	}

	movements, err := h.service.History(ctx, productID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID.String(),
		"movements": movements,
	})
}

// RebuildPosition handles POST /kardex/products/:id/rebuild. It replays the
// product's full movement history and rewrites the stored position.
func (h *KardexHandler) RebuildPosition(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	position, err := h.service.RebuildPosition(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPosition(position))
}

// RegisterRoutes registers kardex routes.
func (h *KardexHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id/movements", h.History)
	rg.POST("/products/:id/rebuild", h.RebuildPosition)
}
