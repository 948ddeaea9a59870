package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/productos")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.POST("", h.CreateProduct)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.PUT("/:id", h.UpdateProduct)
		productRoutes.PATCH("/:id/stock", h.AdjustStock)
		productRoutes.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListProducts: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo productos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products, "total": len(products)})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	p, err := h.productService.CreateProduct(c.Request.Context(), auth.ActingUserID(c), req)
	if err != nil {
		if errors.Is(err, repository.ErrProductConflict) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Ya existe un producto con ese nombre"})
			return
		}
		logger.Error("Hdl.CreateProduct: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creando producto"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}
	p, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Producto no encontrado"})
			return
		}
		logger.Error("Hdl.GetProduct: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo producto"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	p, err := h.productService.UpdateProduct(c.Request.Context(), auth.ActingUserID(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Producto no encontrado"})
		case errors.Is(err, repository.ErrProductConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Ya existe un producto con ese nombre"})
		default:
			logger.Error("Hdl.UpdateProduct: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error actualizando producto"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}
	var req domain.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	p, err := h.productService.AdjustStock(c.Request.Context(), auth.ActingUserID(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Producto no encontrado"})
		case errors.Is(err, repository.ErrStockOutOfBounds):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "El ajuste dejaría el stock en negativo"})
		default:
			logger.Error("Hdl.AdjustStock: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error ajustando stock"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), auth.ActingUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Producto no encontrado"})
			return
		}
		logger.Error("Hdl.DeleteProduct: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error eliminando producto"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Producto eliminado"})
}
