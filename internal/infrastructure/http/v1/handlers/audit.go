package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the change history recorded in sys_audit.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: base, service: service}
}

type auditEntryResponse struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	UserID     string    `json:"userId,omitempty"`
	Changes    any       `json:"changes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// History handles GET /audit/:entityType/:id - change history, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.service.GetEntityHistory(ctx, c.Param("entityType"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := auditEntryResponse{
			ID:         e.ID.String(),
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Action:     string(e.Action),
			UserID:     e.UserID,
			CreatedAt:  e.CreatedAt,
		}
		if len(e.Changes) > 0 {
			item.Changes = e.Changes
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityType/:id", h.History)
}
