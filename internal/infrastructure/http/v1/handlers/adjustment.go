package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/domain"
	"quipu/internal/domain/documents/adjustment"
	"quipu/internal/infrastructure/http/v1/dto"
	"quipu/internal/infrastructure/storage/postgres"
)

// AdjustmentHandler handles HTTP requests for adjustment documents.
type AdjustmentHandler struct {
	*BaseHandler
	service *adjustment.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	return &AdjustmentHandler{BaseHandler: base, service: service}
}

// List handles GET /document/adjustments.
func (h *AdjustmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := adjustment.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if kind := c.Query("kind"); kind != "" {
		val := adjustment.Kind(kind)
		filter.Kind = &val
	}
	if direction := c.Query("direction"); direction != "" {
		val := adjustment.Direction(direction)
		filter.Direction = &val
	}
	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		filter.Posted = &val
	}
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromAdjustment))
}

// Get handles GET /document/adjustments/:id.
func (h *AdjustmentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAdjustment(doc))
}

// Create handles POST /document/adjustments.
func (h *AdjustmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "adjustment", doc.ID, postgres.AuditActionCreate, map[string]any{"number": doc.Number, "direction": string(doc.Direction)})
	c.JSON(http.StatusCreated, dto.FromAdjustment(doc))
}

// Delete handles DELETE /document/adjustments/:id.
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "adjustment", docID, postgres.AuditActionDelete, nil)
	h.NoContent(c)
}

// Post handles POST /document/adjustments/:id/post.
func (h *AdjustmentHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Post(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "adjustment", docID, postgres.AuditActionPost, map[string]any{"number": doc.Number, "value": doc.Value.String()})
	c.JSON(http.StatusOK, dto.FromAdjustment(doc))
}

// RegisterRoutes registers adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/post", h.Post)
}
