package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/middleware"
)

func TestDefaultRouterConfig(t *testing.T) {
	cfg := DefaultRouterConfig()
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, defaultRateWindow, cfg.RateWindow)
	assert.Equal(t, 10, cfg.LeadRateLimit)
	assert.False(t, cfg.EnableAuth)
}

func TestNewRouter_InfrastructureRoutes(t *testing.T) {
	router := NewRouter(Handlers{}, RouterConfig{})

	w := serve(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = serve(t, router, http.MethodGet, "/api/packages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_SwaggerBasicAuth(t *testing.T) {
	router := NewRouter(Handlers{}, RouterConfig{SwaggerUser: "docs", SwaggerPass: "secret"})

	w := serve(t, router, http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRouter_CORS(t *testing.T) {
	router := NewRouter(Handlers{}, RouterConfig{CORSOrigins: []string{"https://tours.example.com"}})

	w := serve(t, router, http.MethodOptions, "/api/packages", nil,
		"Origin", "https://tours.example.com",
		"Access-Control-Request-Method", http.MethodGet,
		"Access-Control-Request-Headers", "Accept-Language")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://tours.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_AdminAPIKeyAuth(t *testing.T) {
	packages := new(mockPackageService)
	packages.On("List", mock.Anything).Return([]model.TourPackage{}, nil)
	admin := NewAdminHandler(AdminServices{Packages: packages}, nil)
	router := NewRouter(Handlers{Admin: admin}, RouterConfig{
		EnableAuth: true,
		APIKeys:    map[string]bool{"k1": true},
	})

	w := serve(t, router, http.MethodGet, "/api/admin/packages", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, router, http.MethodGet, "/api/admin/packages", nil, "X-API-Key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, router, http.MethodGet, "/api/admin/packages", nil, "X-API-Key", "k1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_AdminJWTRoles(t *testing.T) {
	packages := new(mockPackageService)
	packages.On("List", mock.Anything).Return([]model.TourPackage{}, nil)
	auth := new(mockAuthService)
	auth.On("ValidateToken", mock.Anything, "editor").Return(&dto.Claims{UserID: "u1", Roles: []string{model.RoleEditor}}, nil)
	auth.On("ValidateToken", mock.Anything, "viewer").Return(&dto.Claims{UserID: "u2", Roles: []string{"viewer"}}, nil)

	admin := NewAdminHandler(AdminServices{Packages: packages}, nil)
	router := NewRouter(Handlers{Admin: admin}, RouterConfig{EnableAuth: true, AuthService: auth})

	w := serve(t, router, http.MethodGet, "/api/admin/packages", nil, "Authorization", "Bearer editor")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, router, http.MethodGet, "/api/admin/packages", nil, "Authorization", "Bearer viewer")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, router, http.MethodGet, "/api/admin/packages", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRouter_AdminRoutesSkipMissingServices(t *testing.T) {
	admin := NewAdminHandler(AdminServices{}, nil)
	router := NewRouter(Handlers{Admin: admin}, RouterConfig{})

	w := serve(t, router, http.MethodGet, "/api/admin/leads", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_IdempotentLeadReplay(t *testing.T) {
	leads := new(mockLeadService)
	leads.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.Lead{Reference: "TRV-ONCE", Status: model.LeadStatusNew}, nil).Once()
	router := NewRouter(Handlers{Leads: NewLeadHandler(leads, nil)}, RouterConfig{EnableIdempotency: true})

	body := dto.LeadRequest{Name: "Priya", Email: "p@example.com"}
	first := serve(t, router, http.MethodPost, "/api/leads", body, "Idempotency-Key", "lead-42")
	second := serve(t, router, http.MethodPost, "/api/leads", body, "Idempotency-Key", "lead-42")

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))

	replayed, _ := decodeData[dto.LeadResponse](t, second)
	assert.Equal(t, "TRV-ONCE", replayed.Reference)
	leads.AssertNumberOfCalls(t, "Submit", 1)
}
