package handler

import (
	"github.com/gin-gonic/gin"
	invoicingapp "github.com/ginvoice/backend/internal/application/invoicing"
)

// PlatformTaskHandler handles platform task API endpoints
type PlatformTaskHandler struct {
	BaseHandler
	taskService *invoicingapp.PlatformTaskService
}

// NewPlatformTaskHandler creates a new PlatformTaskHandler
func NewPlatformTaskHandler(taskService *invoicingapp.PlatformTaskService) *PlatformTaskHandler {
	return &PlatformTaskHandler{
		taskService: taskService,
	}
}

// Create godoc
// @Summary      Open a platform submission task
// @Description  Tracks the manual upload of an invoice to a client procurement portal
// @Tags         platform-tasks
// @Accept       json
// @Produce      json
// @Param        request body invoicing.CreatePlatformTaskRequest true "Task details"
// @Success      201 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks [post]
func (h *PlatformTaskHandler) Create(c *gin.Context) {
	var req invoicingapp.CreatePlatformTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// GetByID godoc
// @Summary      Get platform task by ID
// @Tags         platform-tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/{id} [get]
func (h *PlatformTaskHandler) GetByID(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// List godoc
// @Summary      List platform tasks
// @Tags         platform-tasks
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Param        platform_name query string false "Filter by platform"
// @Param        invoice_id query string false "Filter by invoice"
// @Success      200 {object} dto.Response{data=[]invoicing.PlatformTaskResponse}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks [get]
func (h *PlatformTaskHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	withQueryFilter(c, &filter, "status", "status")
	withQueryFilter(c, &filter, "platform_name", "platform_name")
	withQueryFilter(c, &filter, "invoice_id", "invoice_id")

	tasks, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// ListOverdue godoc
// @Summary      List overdue platform tasks
// @Description  Open tasks past their SLA deadline, most overdue first
// @Tags         platform-tasks
// @Produce      json
// @Success      200 {object} dto.Response{data=[]invoicing.PlatformTaskResponse}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/overdue [get]
func (h *PlatformTaskHandler) ListOverdue(c *gin.Context) {
	tasks, err := h.taskService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// Start godoc
// @Summary      Start working a platform task
// @Tags         platform-tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/{id}/start [post]
func (h *PlatformTaskHandler) Start(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Start(c.Request.Context(), getActor(c), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Block godoc
// @Summary      Block a platform task
// @Description  Records why the submission cannot proceed (portal outage, missing credentials)
// @Tags         platform-tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body invoicing.BlockPlatformTaskRequest true "Blocking note"
// @Success      200 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/{id}/block [post]
func (h *PlatformTaskHandler) Block(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req invoicingapp.BlockPlatformTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Block(c.Request.Context(), getActor(c), taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Retry godoc
// @Summary      Move a blocked task back in progress
// @Tags         platform-tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/{id}/retry [post]
func (h *PlatformTaskHandler) Retry(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Retry(c.Request.Context(), getActor(c), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Complete godoc
// @Summary      Complete a platform task
// @Description  Optionally records an evidence document reference
// @Tags         platform-tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body invoicing.CompletePlatformTaskRequest true "Completion details"
// @Success      200 {object} dto.Response{data=invoicing.PlatformTaskResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoicing/platform-tasks/{id}/complete [post]
func (h *PlatformTaskHandler) Complete(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req invoicingapp.CompletePlatformTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Complete(c.Request.Context(), getActor(c), taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// RegisterRoutes registers platform task routes
func (h *PlatformTaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/invoicing/platform-tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/overdue", h.ListOverdue)
		tasks.GET("/:id", h.GetByID)
		tasks.POST("/:id/start", h.Start)
		tasks.POST("/:id/block", h.Block)
		tasks.POST("/:id/retry", h.Retry)
		tasks.POST("/:id/complete", h.Complete)
	}
}
