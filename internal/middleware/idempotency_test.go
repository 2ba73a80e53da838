package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/service/cache"
)

func newIdempotentRouter(t *testing.T, status int) (*gin.Engine, *atomic.Int32) {
	t.Helper()
	c := cache.NewSharded[*cachedResponse](100, time.Minute, 1)
	t.Cleanup(c.Stop)

	var calls atomic.Int32
	router := gin.New()
	router.Use(Idempotency(IdempotencyConfig{Cache: c, Enabled: true}))
	handler := func(ctx *gin.Context) {
		n := calls.Add(1)
		ctx.JSON(status, gin.H{"call": n})
	}
	router.POST("/api/leads", handler)
	router.GET("/api/leads", handler)
	return router, &calls
}

func send(router *gin.Engine, method, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/leads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("replays the first response", func(t *testing.T) {
		router, calls := newIdempotentRouter(t, http.StatusCreated)

		first := send(router, http.MethodPost, `{"name":"Priya"}`, "k1")
		second := send(router, http.MethodPost, `{"name":"Priya"}`, "k1")

		require.Equal(t, http.StatusCreated, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
		assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("different body is a new request", func(t *testing.T) {
		router, calls := newIdempotentRouter(t, http.StatusCreated)

		send(router, http.MethodPost, `{"name":"Priya"}`, "k1")
		send(router, http.MethodPost, `{"name":"Ravi"}`, "k1")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("without key every request runs", func(t *testing.T) {
		router, calls := newIdempotentRouter(t, http.StatusCreated)

		send(router, http.MethodPost, `{}`, "")
		send(router, http.MethodPost, `{}`, "")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("safe methods are ignored", func(t *testing.T) {
		router, calls := newIdempotentRouter(t, http.StatusOK)

		send(router, http.MethodGet, "", "k1")
		send(router, http.MethodGet, "", "k1")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		router, calls := newIdempotentRouter(t, http.StatusBadRequest)

		send(router, http.MethodPost, `{}`, "k1")
		w := send(router, http.MethodPost, `{}`, "k1")
		assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestIdempotency_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Idempotency(IdempotencyConfig{Enabled: false}))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(IdempotencyKeyHeader, "k")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIdempotencyCacheKey_RestoresBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader("payload"))
	k1, err := idempotencyCacheKey("k", req)
	require.NoError(t, err)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, req.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", buf.String())

	other := httptest.NewRequest(http.MethodPut, "/api/leads", strings.NewReader("payload"))
	k2, err := idempotencyCacheKey("k", other)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
	assert.Len(t, k1, 64)
}
