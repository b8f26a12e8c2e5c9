package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	billingapp "github.com/ginvoice/backend/internal/application/billing"
	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/google/uuid"
)

// IntakeHandler handles intake item API endpoints, covering the whole
// lifecycle from registration to ready-to-bill
type IntakeHandler struct {
	BaseHandler
	intakeService  *billingapp.IntakeService
	postingService *billingapp.PostingService
}

// NewIntakeHandler creates a new IntakeHandler
func NewIntakeHandler(intakeService *billingapp.IntakeService, postingService *billingapp.PostingService) *IntakeHandler {
	return &IntakeHandler{
		intakeService:  intakeService,
		postingService: postingService,
	}
}

// Create godoc
// @Summary      Register a vendor invoice or official fee
// @Description  Captures the job clearance and vendor compliance snapshots at creation
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        request body billing.CreateIntakeItemRequest true "Intake item details"
// @Success      201 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items [post]
func (h *IntakeHandler) Create(c *gin.Context) {
	var req billingapp.CreateIntakeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.intakeService.Create(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByID godoc
// @Summary      Get intake item by ID
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id} [get]
func (h *IntakeHandler) GetByID(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	item, err := h.intakeService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
// @Summary      List intake items
// @Tags         intake
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by invoice number or concept"
// @Param        status query string false "Filter by status"
// @Param        type query string false "Filter by item type"
// @Param        job_id query string false "Filter by job"
// @Param        vendor_id query string false "Filter by vendor"
// @Success      200 {object} dto.Response{data=[]billing.IntakeItemResponse}
// @Security     BearerAuth
// @Router       /billing/intake-items [get]
func (h *IntakeHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "status", "status")
	withQueryFilter(c, &filter, "type", "type")
	withQueryFilter(c, &filter, "job_id", "job_id")
	withQueryFilter(c, &filter, "vendor_id", "vendor_id")

	items, err := h.intakeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// Submit godoc
// @Summary      Submit a draft intake item for review
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/submit [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	h.transition(c, h.intakeService.Submit)
}

// RequestInfo godoc
// @Summary      Ask the submitter for more information
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Param        request body billing.RequestInfoRequest true "Reviewer note"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/request-info [post]
func (h *IntakeHandler) RequestInfo(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	var req billingapp.RequestInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.intakeService.RequestInfo(c.Request.Context(), getActor(c), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Resubmit godoc
// @Summary      Resubmit an item after providing the requested information
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/resubmit [post]
func (h *IntakeHandler) Resubmit(c *gin.Context) {
	h.transition(c, h.intakeService.Resubmit)
}

// SendForApproval godoc
// @Summary      Send a reviewed item for approval
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/send-for-approval [post]
func (h *IntakeHandler) SendForApproval(c *gin.Context) {
	h.transition(c, h.intakeService.SendForApproval)
}

// Approve godoc
// @Summary      Approve an intake item
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/approve [post]
func (h *IntakeHandler) Approve(c *gin.Context) {
	h.transition(c, h.intakeService.Approve)
}

// Reject godoc
// @Summary      Reject an intake item
// @Description  Rejection is terminal; use resubmit-after-rejection to create a successor
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Param        request body billing.RejectIntakeItemRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/reject [post]
func (h *IntakeHandler) Reject(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	var req billingapp.RejectIntakeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.intakeService.Reject(c.Request.Context(), getActor(c), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// ResubmitAfterRejection godoc
// @Summary      Create the successor of a rejected item
// @Description  The successor carries a -R suffixed invoice number and fresh snapshots
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id path string true "Rejected intake item ID"
// @Param        request body billing.ResubmitAfterRejectionRequest true "Corrections for the successor"
// @Success      201 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/resubmit-after-rejection [post]
func (h *IntakeHandler) ResubmitAfterRejection(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	var req billingapp.ResubmitAfterRejectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.intakeService.ResubmitAfterRejection(c.Request.Context(), getActor(c), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// SendToAccounting godoc
// @Summary      Hand an approved item to accounting
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/send-to-accounting [post]
func (h *IntakeHandler) SendToAccounting(c *gin.Context) {
	h.transition(c, h.intakeService.SendToAccounting)
}

// Post godoc
// @Summary      Record the ledger posting for an intake item
// @Description  Creates the posting record and advances the item in one transaction
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Param        request body billing.PostIntakeItemRequest true "Ledger reference"
// @Success      201 {object} dto.Response{data=billing.AccountingPostingResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/post [post]
func (h *IntakeHandler) Post(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	var req billingapp.PostIntakeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	posting, err := h.postingService.Post(c.Request.Context(), getActor(c), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, posting)
}

// GetPosting godoc
// @Summary      Get the ledger posting of an intake item
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.AccountingPostingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/posting [get]
func (h *IntakeHandler) GetPosting(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	posting, err := h.postingService.GetPosting(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, posting)
}

// MarkReadyToBill godoc
// @Summary      Mark a posted item ready to bill
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/mark-ready-to-bill [post]
func (h *IntakeHandler) MarkReadyToBill(c *gin.Context) {
	h.transition(c, h.intakeService.MarkReadyToBill)
}

// Archive godoc
// @Summary      Archive an intake item
// @Tags         intake
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/archive [post]
func (h *IntakeHandler) Archive(c *gin.Context) {
	h.transition(c, h.intakeService.Archive)
}

// AttachDocument godoc
// @Summary      Attach the source document to an intake item
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id path string true "Intake item ID"
// @Param        request body billing.AttachDocumentRequest true "Storage reference"
// @Success      200 {object} dto.Response{data=billing.IntakeItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/intake-items/{id}/document [post]
func (h *IntakeHandler) AttachDocument(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	var req billingapp.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.intakeService.AttachDocument(c.Request.Context(), getActor(c), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// transition runs a body-less lifecycle operation identified by the path ID
func (h *IntakeHandler) transition(c *gin.Context, op func(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*billingapp.IntakeItemResponse, error)) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid intake item ID")
		return
	}

	item, err := op(c.Request.Context(), getActor(c), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// RegisterRoutes registers intake item routes
func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/billing/intake-items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.GetByID)
		items.POST("/:id/submit", h.Submit)
		items.POST("/:id/request-info", h.RequestInfo)
		items.POST("/:id/resubmit", h.Resubmit)
		items.POST("/:id/send-for-approval", h.SendForApproval)
		items.POST("/:id/approve", h.Approve)
		items.POST("/:id/reject", h.Reject)
		items.POST("/:id/resubmit-after-rejection", h.ResubmitAfterRejection)
		items.POST("/:id/send-to-accounting", h.SendToAccounting)
		items.POST("/:id/post", h.Post)
		items.GET("/:id/posting", h.GetPosting)
		items.POST("/:id/mark-ready-to-bill", h.MarkReadyToBill)
		items.POST("/:id/archive", h.Archive)
		items.POST("/:id/document", h.AttachDocument)
	}
}
