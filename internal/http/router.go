package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/logger"
	"github.com/guttosm/tour-package-service/internal/metrics"
	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

const defaultRateWindow = time.Minute

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	LeadRateLimit     int
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	AuditSink         middleware.LogSink
	AuthService       service.AuthService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     defaultRateWindow,
		LeadRateLimit:  10,
		RequestTimeout: 30 * time.Second,
		EnableAuth:     false,
	}
}

// Handlers groups the handlers mounted by NewRouter. Nil handlers have
// their routes skipped.
type Handlers struct {
	Catalog *Handler
	Leads   *LeadHandler
	Admin   *AdminHandler
	Health  *HealthHandler
}

// NewRouter creates and configures the Gin router for the catalog service.
func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	registerValidators()

	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	if h.Health == nil {
		h.Health = NewHealthHandler()
	}
	registerInfrastructureRoutes(router, h.Health, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	var public []PublicRouteGroup
	if h.Catalog != nil {
		public = append(public, NewCatalogRoutes(h.Catalog))
	}
	if h.Leads != nil {
		public = append(public, NewLeadRoutes(h.Leads, &cfg))
	}
	var authRoutes *AuthRoutes
	if cfg.AuthService != nil {
		authRoutes = NewAuthRoutes(cfg.AuthService, cfg.AuditSink)
		public = append(public, authRoutes)
	}
	for _, group := range public {
		group.RegisterPublicRoutes(api)
	}

	if authRoutes != nil {
		authRoutes.RegisterProtectedRoutes(api, &cfg)
	}
	if h.Admin != nil {
		admin := api.Group("/admin")
		configureAdminAuth(admin, &cfg)
		NewAdminRoutes(h.Admin).RegisterRoutes(admin, &cfg)
	}

	return router
}

// registerValidators installs the custom binding tags on gin's validator.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := dto.RegisterValidators(v); err != nil {
		logger.Logger().Error().Err(err).Msg("failed to register custom validators")
	}
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", middleware.IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	timeoutCfg := middleware.DefaultTimeoutConfig()
	if cfg.RequestTimeout > 0 {
		timeoutCfg.Timeout = cfg.RequestTimeout
	}

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.Timeout(timeoutCfg),
		middleware.RequestLogger(cfg.AuditSink),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
}

// configureAdminAuth protects the admin group. JWT with an admin or
// editor role is used when an AuthService is configured, API keys otherwise.
func configureAdminAuth(admin *gin.RouterGroup, cfg *RouterConfig) {
	if !cfg.EnableAuth {
		return
	}
	if cfg.AuthService != nil {
		admin.Use(
			middleware.JWTAuth(cfg.AuthService),
			middleware.RequireRole(model.RoleAdmin, model.RoleEditor),
		)
		return
	}
	admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
}
