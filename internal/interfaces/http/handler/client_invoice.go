package handler

import (
	"github.com/gin-gonic/gin"
	invoicingapp "github.com/ginvoice/backend/internal/application/invoicing"
)

// ClientInvoiceHandler handles client invoice API endpoints
type ClientInvoiceHandler struct {
	BaseHandler
	invoiceService  *invoicingapp.InvoiceService
	deliveryService *invoicingapp.DeliveryService
}

// NewClientInvoiceHandler creates a new ClientInvoiceHandler
func NewClientInvoiceHandler(invoiceService *invoicingapp.InvoiceService, deliveryService *invoicingapp.DeliveryService) *ClientInvoiceHandler {
	return &ClientInvoiceHandler{
		invoiceService:  invoiceService,
		deliveryService: deliveryService,
	}
}

// AttachInvoiceDocumentRequest carries the storage reference of the final
// invoice document
type AttachInvoiceDocumentRequest struct {
	DocRef string `json:"doc_ref" binding:"required,min=1,max=500"`
}

// Issue godoc
// @Summary      Issue a client invoice
// @Description  From an invoice-draft batch, or manually with a nil batch for pro-bono work
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicing.IssueInvoiceRequest true "Invoice details"
// @Success      201 {object} dto.Response{data=invoicing.ClientInvoiceResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices [post]
func (h *ClientInvoiceHandler) Issue(c *gin.Context) {
	var req invoicingapp.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Issue(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID godoc
// @Summary      Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoicing.ClientInvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id} [get]
func (h *ClientInvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @Summary      List client invoices
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by external invoice number"
// @Param        status query string false "Filter by status"
// @Param        job_id query string false "Filter by job"
// @Param        batch_id query string false "Filter by batch"
// @Success      200 {object} dto.Response{data=[]invoicing.ClientInvoiceResponse}
// @Security     BearerAuth
// @Router       /invoicing/invoices [get]
func (h *ClientInvoiceHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "status", "status")
	withQueryFilter(c, &filter, "job_id", "job_id")
	withQueryFilter(c, &filter, "batch_id", "batch_id")

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoices)
}

// MarkReadyForSap godoc
// @Summary      Mark an invoice ready for the external ledger
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoicing.ClientInvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id}/mark-ready-for-sap [post]
func (h *ClientInvoiceHandler) MarkReadyForSap(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkReadyForSap(c.Request.Context(), getActor(c), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// MarkIssued godoc
// @Summary      Mark an invoice as issued
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoicing.ClientInvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id}/mark-issued [post]
func (h *ClientInvoiceHandler) MarkIssued(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkIssued(c.Request.Context(), getActor(c), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// AttachDocument godoc
// @Summary      Attach the final invoice document
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Param        request body AttachInvoiceDocumentRequest true "Storage reference"
// @Success      200 {object} dto.Response{data=invoicing.ClientInvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id}/document [post]
func (h *ClientInvoiceHandler) AttachDocument(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req AttachInvoiceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.AttachDocument(c.Request.Context(), getActor(c), invoiceID, req.DocRef)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// DispatchDelivery godoc
// @Summary      Create a delivery for an issued invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Param        request body invoicing.DispatchDeliveryRequest true "Delivery details"
// @Success      201 {object} dto.Response{data=invoicing.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id}/deliveries [post]
func (h *ClientInvoiceHandler) DispatchDelivery(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoicingapp.DispatchDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	delivery, err := h.deliveryService.Dispatch(c.Request.Context(), getActor(c), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, delivery)
}

// ListDeliveries godoc
// @Summary      List deliveries of an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=[]invoicing.DeliveryResponse}
// @Security     BearerAuth
// @Router       /invoicing/invoices/{id}/deliveries [get]
func (h *ClientInvoiceHandler) ListDeliveries(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	deliveries, err := h.deliveryService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deliveries)
}

// RegisterRoutes registers client invoice routes
func (h *ClientInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoicing/invoices")
	{
		invoices.POST("", h.Issue)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/mark-ready-for-sap", h.MarkReadyForSap)
		invoices.POST("/:id/mark-issued", h.MarkIssued)
		invoices.POST("/:id/document", h.AttachDocument)
		invoices.POST("/:id/deliveries", h.DispatchDelivery)
		invoices.GET("/:id/deliveries", h.ListDeliveries)
	}
}
