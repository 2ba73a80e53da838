package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService, audit middleware.LogSink) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, audit),
		authService: authService,
	}
}

// RegisterPublicRoutes registers the login route.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.handler.Login)
}

// RegisterProtectedRoutes registers routes that require a bearer token.
func (r *AuthRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	protected := rg.Group("/auth")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		userLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(userLimiter.UserRateLimit())
	}

	protected.GET("/me", r.handler.Me)
}
