package handler

import (
	"github.com/gin-gonic/gin"
	complianceapp "github.com/ginvoice/backend/internal/application/compliance"
)

// JobHandler handles job-related API endpoints
type JobHandler struct {
	BaseHandler
	complianceService *complianceapp.Service
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(complianceService *complianceapp.Service) *JobHandler {
	return &JobHandler{
		complianceService: complianceService,
	}
}

// Create godoc
// @Summary      Create a new job
// @Description  Register a client matter with its billing clearance state
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        request body compliance.CreateJobRequest true "Job creation request"
// @Success      201 {object} dto.Response{data=compliance.JobResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req complianceapp.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job, err := h.complianceService.CreateJob(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, job)
}

// GetByID godoc
// @Summary      Get job by ID
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=compliance.JobResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.complianceService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}

// List godoc
// @Summary      List jobs
// @Description  List jobs with pagination; search matches code and client name
// @Tags         jobs
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by code or client name"
// @Param        clearance query string false "Filter by clearance status"
// @Success      200 {object} dto.Response{data=[]compliance.JobResponse}
// @Security     BearerAuth
// @Router       /compliance/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "clearance", "uttai_clearance")

	result, err := h.complianceService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Archive godoc
// @Summary      Archive a job
// @Description  Archived jobs stop appearing in clearance reviews
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /compliance/jobs/{id}/archive [post]
func (h *JobHandler) Archive(c *gin.Context) {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	if err := h.complianceService.ArchiveJob(c.Request.Context(), getActor(c), jobID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers job routes
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/compliance/jobs")
	{
		jobs.POST("", h.Create)
		jobs.GET("", h.List)
		jobs.GET("/:id", h.GetByID)
		jobs.POST("/:id/archive", h.Archive)
	}
}
