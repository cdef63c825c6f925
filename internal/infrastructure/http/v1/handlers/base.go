package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/infrastructure/http/v1/dto"
	"quipu/internal/infrastructure/storage/postgres"
	"quipu/pkg/logger"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	audit *postgres.AuditService
}

// NewBaseHandler creates a new base handler. The audit service may be nil,
// in which case Audit is a no-op.
func NewBaseHandler(audit *postgres.AuditService) *BaseHandler {
	return &BaseHandler{audit: audit}
}

// Audit records an entity lifecycle event. Best effort: failures are logged,
// never surfaced to the client.
func (h *BaseHandler) Audit(c *gin.Context, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", string(action),
			"error", err,
		)
	}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers the error on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler (single source
// of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
