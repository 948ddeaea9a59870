package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(rs service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reportes", h.ListReports)
	router.POST("/reportes/generate", h.GenerateReport)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListReports: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo reportes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports, "total": len(reports)})
}

func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req domain.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Datos de reporte inválidos: " + err.Error()})
		return
	}

	generated, err := h.reportService.Generate(c.Request.Context(), auth.ActingUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownReportType):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tipo de reporte desconocido"})
		case errors.Is(err, service.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rango de fechas inválido"})
		case errors.Is(err, service.ErrUnsupportedFormat):
			c.JSON(http.StatusNotImplemented, gin.H{"success": false, "message": "Formato disponible solo como CSV"})
		default:
			logger.Error("Hdl.GenerateReport: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error generando reporte"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", generated.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", generated.Content)
}
