package handler

import (
	"github.com/gin-gonic/gin"
	invoicingapp "github.com/ginvoice/backend/internal/application/invoicing"
)

// DeliveryHandler handles delivery API endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *invoicingapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *invoicingapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// GetByID godoc
// @Summary      Get delivery by ID
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Success      200 {object} dto.Response{data=invoicing.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	deliveryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.GetByID(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, delivery)
}

// MarkSent godoc
// @Summary      Confirm a delivery was sent
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Param        request body invoicing.MarkSentRequest true "Send confirmation"
// @Success      200 {object} dto.Response{data=invoicing.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/deliveries/{id}/mark-sent [post]
func (h *DeliveryHandler) MarkSent(c *gin.Context) {
	deliveryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req invoicingapp.MarkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	delivery, err := h.deliveryService.MarkSent(c.Request.Context(), getActor(c), deliveryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, delivery)
}

// RegisterRoutes registers delivery routes
func (h *DeliveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deliveries := rg.Group("/invoicing/deliveries")
	{
		deliveries.GET("/:id", h.GetByID)
		deliveries.POST("/:id/mark-sent", h.MarkSent)
	}
}
