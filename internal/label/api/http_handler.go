package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type LabelHandler struct {
	labelService service.LabelService
}

func NewLabelHandler(ls service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: ls}
}

func (h *LabelHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/etiquetas/plantillas", h.ListTemplates)
	router.POST("/etiquetas/imprimir", h.PrintLabels)
}

func (h *LabelHandler) ListTemplates(c *gin.Context) {
	templates := h.labelService.ListTemplates()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": templates, "total": len(templates)})
}

func (h *LabelHandler) PrintLabels(c *gin.Context) {
	var req domain.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Datos de impresión inválidos: " + err.Error()})
		return
	}

	job, err := h.labelService.QueuePrint(c.Request.Context(), auth.ActingUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTemplate):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Plantilla de etiqueta desconocida"})
		case errors.Is(err, service.ErrTooManyCopies):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Número de copias fuera de rango"})
		case errors.Is(err, service.ErrUnknownLot):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lote no encontrado"})
		default:
			logger.Error("Hdl.PrintLabels: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error encolando etiquetas"})
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": job})
}
