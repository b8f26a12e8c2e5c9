package handler

import (
	"github.com/gin-gonic/gin"
	dashboardapp "github.com/ginvoice/backend/internal/application/dashboard"
)

// DashboardHandler handles the operational dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Refresh godoc
// @Summary      Build a fresh dashboard snapshot
// @Description  Counts, alerts, work queue and recent events assembled from independent read queries
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.Snapshot}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snapshot, err := h.dashboardService.Refresh(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Refresh)
}
