package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type LotHandler struct {
	lotService service.LotService
}

func NewLotHandler(ls service.LotService) *LotHandler {
	return &LotHandler{lotService: ls}
}

func (h *LotHandler) RegisterRoutes(router *gin.RouterGroup) {
	lotRoutes := router.Group("/lotes")
	{
		lotRoutes.GET("", h.ListLots)
		lotRoutes.POST("", h.CreateLot)
		lotRoutes.GET("/:id", h.GetLot)
		lotRoutes.PUT("/:id", h.UpdateLot)
		lotRoutes.PATCH("/:id/estado", h.UpdateLotStatus)
		lotRoutes.DELETE("/:id", h.DeleteLot)
	}
}

func (h *LotHandler) ListLots(c *gin.Context) {
	lots, err := h.lotService.ListLots(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListLots: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo lotes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": lots, "total": len(lots)})
}

func (h *LotHandler) CreateLot(c *gin.Context) {
	var req domain.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	l, err := h.lotService.CreateLot(c.Request.Context(), auth.ActingUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLotDates):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "La fecha de caducidad debe ser posterior al tueste"})
		case errors.Is(err, repository.ErrLotCodeConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Ya existe un lote con ese código"})
		case errors.Is(err, repository.ErrUnknownProductRef):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El producto indicado no existe"})
		default:
			logger.Error("Hdl.CreateLot: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creando lote"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": l})
}

func (h *LotHandler) GetLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de lote inválido"})
		return
	}
	l, err := h.lotService.GetLot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lote no encontrado"})
			return
		}
		logger.Error("Hdl.GetLot: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo lote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": l})
}

func (h *LotHandler) UpdateLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de lote inválido"})
		return
	}
	var req domain.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	l, err := h.lotService.UpdateLot(c.Request.Context(), auth.ActingUserID(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLotDates):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "La fecha de caducidad debe ser posterior al tueste"})
		case errors.Is(err, repository.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lote no encontrado"})
		default:
			logger.Error("Hdl.UpdateLot: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error actualizando lote"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": l})
}

func (h *LotHandler) UpdateLotStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de lote inválido"})
		return
	}
	var req domain.UpdateLotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	if err := h.lotService.UpdateLotStatus(c.Request.Context(), auth.ActingUserID(c), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lote no encontrado"})
			return
		}
		logger.Error("Hdl.UpdateLotStatus: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error actualizando estado del lote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Estado del lote actualizado"})
}

func (h *LotHandler) DeleteLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de lote inválido"})
		return
	}
	if err := h.lotService.DeleteLot(c.Request.Context(), auth.ActingUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lote no encontrado"})
			return
		}
		logger.Error("Hdl.DeleteLot: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error eliminando lote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lote eliminado"})
}
