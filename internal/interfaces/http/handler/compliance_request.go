package handler

import (
	"github.com/gin-gonic/gin"
	complianceapp "github.com/ginvoice/backend/internal/application/compliance"
)

// ComplianceRequestHandler handles compliance request API endpoints
type ComplianceRequestHandler struct {
	BaseHandler
	complianceService *complianceapp.Service
}

// NewComplianceRequestHandler creates a new ComplianceRequestHandler
func NewComplianceRequestHandler(complianceService *complianceapp.Service) *ComplianceRequestHandler {
	return &ComplianceRequestHandler{
		complianceService: complianceService,
	}
}

// Open godoc
// @Summary      Open a compliance request for a job
// @Description  Flags a job whose UTTAI clearance needs review
// @Tags         compliance-requests
// @Accept       json
// @Produce      json
// @Param        request body compliance.OpenRequestRequest true "Request details"
// @Success      201 {object} dto.Response{data=compliance.ComplianceRequestResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/requests [post]
func (h *ComplianceRequestHandler) Open(c *gin.Context) {
	var req complianceapp.OpenRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.complianceService.OpenRequest(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, request)
}

// Start godoc
// @Summary      Start working a compliance request
// @Tags         compliance-requests
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} dto.Response{data=compliance.ComplianceRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/requests/{id}/start [post]
func (h *ComplianceRequestHandler) Start(c *gin.Context) {
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.complianceService.StartRequest(c.Request.Context(), getActor(c), requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

// Resolve godoc
// @Summary      Resolve a compliance request
// @Description  Records the outcome and updates the job clearance in the same transaction
// @Tags         compliance-requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        request body compliance.ResolveRequestRequest true "Resolution details"
// @Success      200 {object} dto.Response{data=compliance.ComplianceRequestResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/requests/{id}/resolve [post]
func (h *ComplianceRequestHandler) Resolve(c *gin.Context) {
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req complianceapp.ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.complianceService.ResolveRequest(c.Request.Context(), getActor(c), requestID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

// ListOpen godoc
// @Summary      List open compliance requests
// @Description  Pending and in-progress requests, oldest first
// @Tags         compliance-requests
// @Produce      json
// @Success      200 {object} dto.Response{data=[]compliance.ComplianceRequestResponse}
// @Security     BearerAuth
// @Router       /compliance/requests/open [get]
func (h *ComplianceRequestHandler) ListOpen(c *gin.Context) {
	requests, err := h.complianceService.ListOpenRequests(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requests)
}

// RegisterRoutes registers compliance request routes
func (h *ComplianceRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/compliance/requests")
	{
		requests.POST("", h.Open)
		requests.GET("/open", h.ListOpen)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/resolve", h.Resolve)
	}
}
