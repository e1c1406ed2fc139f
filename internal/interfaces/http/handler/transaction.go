package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apptrade "github.com/lotbook/backend/internal/application/trade"
	"github.com/lotbook/backend/internal/interfaces/http/dto"
)

// TransactionHandler exposes sale creation, reversal and reads
type TransactionHandler struct {
	BaseHandler
	service *apptrade.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(service *apptrade.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Create)
		transactions.GET("/:id", h.Get)
		transactions.POST("/:id/revert", h.Revert)
	}
}

type createLineRequest struct {
	ProductID string           `json:"product_id" binding:"required,uuid"`
	Amount    decimal.Decimal  `json:"amount" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type createTransactionRequest struct {
	PartyID string              `json:"party_id" binding:"required,uuid"`
	Lines   []createLineRequest `json:"lines" binding:"required,min=1,dive"`
	Paid    decimal.Decimal     `json:"paid"`
	Method  string              `json:"method" binding:"omitempty,max=64"`
	Comment string              `json:"comment" binding:"omitempty,max=512"`
}

// Create records a sale transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines := make([]apptrade.LineRequest, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = apptrade.LineRequest{
			ProductID: uuid.MustParse(line.ProductID),
			Amount:    line.Amount,
			UnitPrice: line.UnitPrice,
		}
	}

	view, err := h.service.Create(c.Request.Context(), apptrade.CreateTransactionRequest{
		PartyID: uuid.MustParse(req.PartyID),
		Lines:   lines,
		Paid:    req.Paid,
		Method:  req.Method,
		Comment: req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Get returns one transaction with its finance summary
func (h *TransactionHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.service.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Revert undoes a transaction
func (h *TransactionHandler) Revert(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.service.Revert(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
