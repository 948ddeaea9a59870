package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(as service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: as}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/actividad", h.ListRecent)
}

func (h *ActivityHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.activityService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Hdl.ListRecent: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo actividad"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": activities, "total": len(activities)})
}
