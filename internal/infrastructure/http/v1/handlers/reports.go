package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quipu/internal/core/apperror"
	"quipu/internal/domain/reports"
)

// ReportsHandler handles HTTP requests for financial reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportsHandler) TrialBalance(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.service.TrialBalance(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// IncomeStatement handles GET /reports/income-statement.
func (h *ReportsHandler) IncomeStatement(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.service.IncomeStatement(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// BalanceSheet handles GET /reports/balance-sheet. The asOf date defaults to
// now when absent.
func (h *ReportsHandler) BalanceSheet(c *gin.Context) {
	ctx := c.Request.Context()

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid asOf date, RFC3339 expected").
				WithDetail("value", raw))
			return
		}
		asOf = parsed
	}

	report, err := h.service.BalanceSheet(ctx, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// parsePeriod reads the optional from/to query bounds. Invalid dates are
// rejected rather than silently dropped; reports must not lie about their
// period.
func (h *ReportsHandler) parsePeriod(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date, RFC3339 expected").
				WithDetail("value", raw))
			return nil, nil, false
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date, RFC3339 expected").
				WithDetail("value", raw))
			return nil, nil, false
		}
		to = &parsed
	}

	return from, to, true
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trial-balance", h.TrialBalance)
	rg.GET("/income-statement", h.IncomeStatement)
	rg.GET("/balance-sheet", h.BalanceSheet)
}
