package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/domain/journal"
	"quipu/internal/infrastructure/http/v1/dto"
	"quipu/internal/infrastructure/storage/postgres"
)

// JournalHandler handles HTTP requests for journal entries.
type JournalHandler struct {
	*BaseHandler
	service *journal.Service
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(base *BaseHandler, service *journal.Service) *JournalHandler {
	return &JournalHandler{BaseHandler: base, service: service}
}

// List handles GET /journal/entries.
func (h *JournalHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := journal.Filter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &parsed
		}
	}
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			filter.Statuses = append(filter.Statuses, journal.Status(s))
		}
	}

	entries, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromEntry(e)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Get handles GET /journal/entries/:id.
func (h *JournalHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entry, err := h.service.Get(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromEntry(entry))
}

// Create handles POST /journal/entries - creates a manual draft.
func (h *JournalHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.CreateDraft(ctx, entry); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromEntry(entry))
}

// Post handles POST /journal/entries/:id/post.
func (h *JournalHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entry, err := h.service.Post(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "journal_entry", entryID, postgres.AuditActionPost, map[string]any{"number": entry.Number})
	c.JSON(http.StatusOK, dto.FromEntry(entry))
}

// Void handles POST /journal/entries/:id/void.
func (h *JournalHandler) Void(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entry, err := h.service.Void(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "journal_entry", entryID, postgres.AuditActionVoid, map[string]any{"number": entry.Number})
	c.JSON(http.StatusOK, dto.FromEntry(entry))
}

// RegisterRoutes registers journal routes.
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.POST("/:id/post", h.Post)
	rg.POST("/:id/void", h.Void)
}
