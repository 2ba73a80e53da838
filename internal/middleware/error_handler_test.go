package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
)

func TestErrorHandler(t *testing.T) {
	t.Run("writes envelope when handler wrote nothing", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID(), ErrorHandler())
		router.GET("/", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeError(t, w).Error)
	})

	t.Run("keeps response already written", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorHandler())
		router.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("not found upstream"))
			c.JSON(http.StatusNotFound, dto.NewError(dto.ErrCodeNotFound, "missing"))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error)
	assert.Equal(t, "Ocorreu um erro inesperado", resp.Message)
	assert.NotEmpty(t, resp.RequestID)
}
