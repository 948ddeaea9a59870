package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
)

func verifyRequest(t *testing.T, handler *UserHandler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/verify", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	handler.Verify(c)
	return w
}

func TestVerifyAuthorizationHeaderParsing(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 1)
	handler := NewUserHandler(nil, tokens)

	token, err := tokens.Generate(7, "ana@mexhi.mx", "Ana", "admin")
	assert.NoError(t, err)

	t.Run("bearer token accepted", func(t *testing.T) {
		w := verifyRequest(t, handler, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ana@mexhi.mx")
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		w := verifyRequest(t, handler, "bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong scheme rejected even with valid token", func(t *testing.T) {
		w := verifyRequest(t, handler, "Tokenxy "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := verifyRequest(t, handler, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("scheme without token rejected", func(t *testing.T) {
		w := verifyRequest(t, handler, "Bearer")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
