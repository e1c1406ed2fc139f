package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apppurchase "github.com/lotbook/backend/internal/application/purchase"
)

// PurchaseHandler exposes supplier intake recording
type PurchaseHandler struct {
	BaseHandler
	service *apppurchase.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *apppurchase.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchases", h.Record)
}

type recordPurchaseRequest struct {
	SupplierID string           `json:"supplier_id" binding:"required,uuid"`
	MaterialID string           `json:"material_id" binding:"required,uuid"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	UnitCost   decimal.Decimal  `json:"unit_cost"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	Paid       decimal.Decimal  `json:"paid"`
	Method     string           `json:"method" binding:"omitempty,max=64"`
	Comment    string           `json:"comment" binding:"omitempty,max=512"`
}

// Record books a supplier intake
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req recordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.service.RecordPurchase(c.Request.Context(), apppurchase.RecordPurchaseRequest{
		SupplierID: uuid.MustParse(req.SupplierID),
		MaterialID: uuid.MustParse(req.MaterialID),
		Amount:     req.Amount,
		UnitCost:   req.UnitCost,
		UnitPrice:  req.UnitPrice,
		Paid:       req.Paid,
		Method:     req.Method,
		Comment:    req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}
