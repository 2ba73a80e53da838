package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
)

func TestTimeout(t *testing.T) {
	slow := func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(time.Second):
			c.Status(http.StatusOK)
		}
	}

	tests := []struct {
		name       string
		cfg        TimeoutConfig
		path       string
		handler    gin.HandlerFunc
		wantStatus int
	}{
		{
			name:       "fast handler",
			cfg:        TimeoutConfig{Timeout: time.Second},
			path:       "/fast",
			handler:    func(c *gin.Context) { c.Status(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "slow handler times out",
			cfg:        TimeoutConfig{Timeout: 20 * time.Millisecond},
			path:       "/slow",
			handler:    slow,
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "skipped path has no deadline",
			cfg:        TimeoutConfig{Timeout: 20 * time.Millisecond, SkipPaths: []string{"/slow"}},
			path:       "/slow",
			handler:    slow,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Timeout(tt.cfg))
			router.GET(tt.path, tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusGatewayTimeout {
				assert.Equal(t, dto.ErrCodeTimeout, decodeError(t, w).Error)
			}
		})
	}
}

func TestTimeoutWithDuration(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutWithDuration(time.Second))
	router.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
