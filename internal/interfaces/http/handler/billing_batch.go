package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/ginvoice/backend/internal/application/billing"
)

// BillingBatchHandler handles billing batch API endpoints
type BillingBatchHandler struct {
	BaseHandler
	batchService *billingapp.BatchService
}

// NewBillingBatchHandler creates a new BillingBatchHandler
func NewBillingBatchHandler(batchService *billingapp.BatchService) *BillingBatchHandler {
	return &BillingBatchHandler{
		batchService: batchService,
	}
}

// Create godoc
// @Summary      Open a billing batch for a job
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body billing.CreateBatchRequest true "Batch details"
// @Success      201 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches [post]
func (h *BillingBatchHandler) Create(c *gin.Context) {
	var req billingapp.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, batch)
}

// GetByID godoc
// @Summary      Get batch by ID
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches/{id} [get]
func (h *BillingBatchHandler) GetByID(c *gin.Context) {
	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// List godoc
// @Summary      List billing batches
// @Tags         batches
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Param        job_id query string false "Filter by job"
// @Success      200 {object} dto.Response{data=[]billing.BillingBatchResponse}
// @Security     BearerAuth
// @Router       /billing/batches [get]
func (h *BillingBatchHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "status", "status")
	withQueryFilter(c, &filter, "job_id", "job_id")

	batches, err := h.batchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batches)
}

// AddItem godoc
// @Summary      Add a ready-to-bill intake item to a batch
// @Description  Rejects items from another job, another currency, or already bound to an active batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body billing.AddToBatchRequest true "Intake item reference"
// @Success      200 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches/{id}/items [post]
func (h *BillingBatchHandler) AddItem(c *gin.Context) {
	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req billingapp.AddToBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.AddToBatch(c.Request.Context(), getActor(c), batchID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// SetDecision godoc
// @Summary      Record the emit/transfer/discard decision for a batch member
// @Description  Batch totals are recomputed from the emit set in the same mutation
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        item_id path string true "Batch item ID"
// @Param        request body billing.SetDecisionRequest true "Decision"
// @Success      200 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches/{id}/items/{item_id}/decision [post]
func (h *BillingBatchHandler) SetDecision(c *gin.Context) {
	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batchItemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid batch item ID")
		return
	}

	var req billingapp.SetDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.SetDecision(c.Request.Context(), getActor(c), batchID, batchItemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// ApproveByPartner godoc
// @Summary      Record partner approval of a batch
// @Description  Requires a decision on every member and at least one emit
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches/{id}/approve [post]
func (h *BillingBatchHandler) ApproveByPartner(c *gin.Context) {
	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.ApproveByPartner(c.Request.Context(), getActor(c), batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// MarkInvoiceDraft godoc
// @Summary      Move an approved batch into invoice drafting
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=billing.BillingBatchResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/batches/{id}/mark-invoice-draft [post]
func (h *BillingBatchHandler) MarkInvoiceDraft(c *gin.Context) {
	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.MarkInvoiceDraft(c.Request.Context(), getActor(c), batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// RegisterRoutes registers billing batch routes
func (h *BillingBatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	batches := rg.Group("/billing/batches")
	{
		batches.POST("", h.Create)
		batches.GET("", h.List)
		batches.GET("/:id", h.GetByID)
		batches.POST("/:id/items", h.AddItem)
		batches.POST("/:id/items/:item_id/decision", h.SetDecision)
		batches.POST("/:id/approve", h.ApproveByPartner)
		batches.POST("/:id/mark-invoice-draft", h.MarkInvoiceDraft)
	}
}
