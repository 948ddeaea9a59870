package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/service"
)

type UserHandler struct {
	userService service.UserService
	tokens      *auth.TokenManager
}

func NewUserHandler(us service.UserService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{userService: us, tokens: tokens}
}

// RegisterAuthRoutes mounts the public auth endpoints.
func (h *UserHandler) RegisterAuthRoutes(router *gin.RouterGroup) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/logout", h.Logout)
		authRoutes.POST("/verify", h.Verify)
	}
}

// RegisterUserRoutes mounts the admin-only user administration endpoints.
func (h *UserHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/usuarios")
	{
		userRoutes.GET("", h.ListUsers)
		userRoutes.POST("", h.CreateUser)
		userRoutes.GET("/:id", h.GetUser)
		userRoutes.PUT("/:id", h.UpdateUser)
		userRoutes.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email y password requeridos"})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Credenciales inválidas"})
		case errors.Is(err, service.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Usuario inactivo"})
		default:
			logger.Error("Hdl.Login: service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error en servidor"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login exitoso",
		"token":   resp.Token,
		"usuario": resp.User,
	})
}

// Logout is stateless: the client drops the token.
func (h *UserHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout exitoso"})
}

func (h *UserHandler) Verify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token no proporcionado"})
		return
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Formato de token inválido"})
		return
	}
	claims, err := h.tokens.Validate(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token inválido o expirado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "usuario": gin.H{
		"id":     claims.UserID,
		"email":  claims.Email,
		"nombre": claims.Name,
		"rol":    claims.Role,
	}})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListUsers: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo usuarios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users, "total": len(users)})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), auth.ActingUserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Ya existe un usuario con ese email"})
			return
		}
		logger.Error("Hdl.CreateUser: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creando usuario"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de usuario inválido"})
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuario no encontrado"})
			return
		}
		logger.Error("Hdl.GetUser: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error obteniendo usuario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de usuario inválido"})
		return
	}
	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido: " + err.Error()})
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), auth.ActingUserID(c), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuario no encontrado"})
			return
		}
		logger.Error("Hdl.UpdateUser: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error actualizando usuario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de usuario inválido"})
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), auth.ActingUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuario no encontrado"})
			return
		}
		logger.Error("Hdl.DeleteUser: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error eliminando usuario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Usuario eliminado"})
}
