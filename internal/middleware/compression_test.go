package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCompression(t *testing.T) {
	router := gin.New()
	router.Use(Compression())
	body := strings.Repeat("tour package ", 200)
	router.GET("/api/packages", func(c *gin.Context) { c.String(http.StatusOK, body) })
	router.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, body) })

	tests := []struct {
		path     string
		wantGzip bool
	}{
		{path: "/api/packages", wantGzip: true},
		{path: "/metrics", wantGzip: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.wantGzip {
				assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
				assert.Less(t, w.Body.Len(), len(body))
			} else {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
			}
		})
	}
}
