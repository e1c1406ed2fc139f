package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfinance "github.com/lotbook/backend/internal/application/finance"
	"github.com/lotbook/backend/internal/interfaces/http/dto"
)

// BalanceHandler exposes receivable and payable aggregates
type BalanceHandler struct {
	BaseHandler
	service *appfinance.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(service *appfinance.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// RegisterRoutes registers balance routes
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	balances := rg.Group("/balances")
	{
		balances.GET("/receivables", h.Receivables)
		balances.GET("/receivables/:id", h.ReceivableFor)
		balances.GET("/payables", h.Payables)
		balances.GET("/payables/:id", h.PayableFor)
	}
}

// Receivables returns every client's outstanding debt
func (h *BalanceHandler) Receivables(c *gin.Context) {
	report, err := h.service.AggregateReceivables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Payables returns the outstanding debt owed to every supplier
func (h *BalanceHandler) Payables(c *gin.Context) {
	report, err := h.service.AggregatePayables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ReceivableFor returns one client's outstanding amount
func (h *BalanceHandler) ReceivableFor(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.service.ReceivableFor(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"party_id": req.ID, "outstanding": out})
}

// PayableFor returns the outstanding amount owed to one supplier
func (h *BalanceHandler) PayableFor(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.service.PayableFor(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"party_id": req.ID, "outstanding": out})
}
