package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(ds service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.GetDashboard: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dashboard})
}
