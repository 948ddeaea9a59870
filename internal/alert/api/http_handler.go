package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type AlertHandler struct {
	alertService service.AlertService
}

func NewAlertHandler(as service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: as}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alertRoutes := router.Group("/alertas")
	{
		alertRoutes.GET("", h.ListAlerts)
		alertRoutes.PATCH("/:id/estado", h.UpdateStatus)
		alertRoutes.DELETE("/:id", h.DeleteAlert)
	}
}

// ListAlerts reconciles inventory state against the alert table before
// returning the list, so the feed always reflects current violations.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.alertService.ReconcileAndList(c.Request.Context(), auth.ActingUserID(c))
	if err != nil {
		logger.Error("Hdl.ListAlerts: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo alertas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts, "total": len(alerts)})
}

func (h *AlertHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de alerta inválido"})
		return
	}
	var req domain.UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}

	err = h.alertService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlertNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Alerta no encontrada"})
		case errors.Is(err, service.ErrInvalidStatusChange):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Transición de estado no permitida"})
		default:
			logger.Error("Hdl.UpdateStatus: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error actualizando alerta"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Alerta actualizada"})
}

func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de alerta inválido"})
		return
	}
	if err := h.alertService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Alerta no encontrada"})
			return
		}
		logger.Error("Hdl.DeleteAlert: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error eliminando alerta"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Alerta eliminada"})
}
