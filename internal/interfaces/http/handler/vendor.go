package handler

import (
	"github.com/gin-gonic/gin"
	complianceapp "github.com/ginvoice/backend/internal/application/compliance"
)

// VendorHandler handles vendor-related API endpoints
type VendorHandler struct {
	BaseHandler
	complianceService *complianceapp.Service
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(complianceService *complianceapp.Service) *VendorHandler {
	return &VendorHandler{
		complianceService: complianceService,
	}
}

// Create godoc
// @Summary      Create a new vendor
// @Description  A vendor without valid certification documents starts as non compliant
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body compliance.CreateVendorRequest true "Vendor creation request"
// @Success      201 {object} dto.Response{data=compliance.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	var req complianceapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.complianceService.CreateVendor(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vendor)
}

// GetByID godoc
// @Summary      Get vendor by ID
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} dto.Response{data=compliance.VendorResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	vendorID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.complianceService.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// List godoc
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name or tax ID"
// @Param        compliance_status query string false "Filter by compliance status"
// @Success      200 {object} dto.Response{data=[]compliance.VendorResponse}
// @Security     BearerAuth
// @Router       /compliance/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "compliance_status", "compliance_status")

	result, err := h.complianceService.ListVendors(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AddDocument godoc
// @Summary      Attach a certification document to a vendor
// @Description  The vendor compliance status is recomputed from the document expiry dates
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Param        request body compliance.AddVendorDocumentRequest true "Document details"
// @Success      200 {object} dto.Response{data=compliance.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/vendors/{id}/documents [post]
func (h *VendorHandler) AddDocument(c *gin.Context) {
	vendorID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req complianceapp.AddVendorDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.complianceService.AddVendorDocument(c.Request.Context(), getActor(c), vendorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// RegisterRoutes registers vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/compliance/vendors")
	{
		vendors.POST("", h.Create)
		vendors.GET("", h.List)
		vendors.GET("/:id", h.GetByID)
		vendors.POST("/:id/documents", h.AddDocument)
	}
}
