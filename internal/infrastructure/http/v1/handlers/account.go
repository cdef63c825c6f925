package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/infrastructure/http/v1/dto"
)

// AccountHandler handles HTTP requests for the chart of accounts.
type AccountHandler struct {
	*BaseHandler
	service *account.Service
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHandler {
	return &AccountHandler{BaseHandler: base, service: service}
}

// List handles GET /catalog/accounts.
func (h *AccountHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := query.ToFilter()
	if query.OrderBy == "" {
		filter.OrderBy = "code"
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromAccount))
}

// Get handles GET /catalog/accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	a, err := h.service.GetByID(ctx, accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccount(a))
}

// GetByCode handles GET /catalog/accounts/by-code/:code.
func (h *AccountHandler) GetByCode(c *gin.Context) {
	ctx := c.Request.Context()

	a, err := h.service.GetByCode(ctx, c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccount(a))
}

// Create handles POST /catalog/accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := req.ToEntity()
	if err := h.service.Create(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAccount(a))
}

// RegisterRoutes registers account routes.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/by-code/:code", h.GetByCode)
	rg.POST("", h.Create)
}
