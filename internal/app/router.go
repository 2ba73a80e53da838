// Package app provides router configuration.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/http"
	"github.com/guttosm/tour-package-service/internal/middleware"
)

var errCatalogNotLoaded = errors.New("catalog snapshot not loaded")

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers http.Handlers
	Config   http.RouterConfig
}

// InitializeRouter builds the HTTP handlers and router configuration.
// sink may be nil.
func InitializeRouter(cfg config.Config, svc *ServiceComponents, db *DatabaseComponents, sink middleware.LogSink) *RouterComponents {
	health := http.NewHealthHandler()
	health.RegisterChecker("catalog", http.HealthCheckFunc(func(context.Context) error {
		if svc.Catalog.Snapshot().Version == 0 {
			return errCatalogNotLoaded
		}
		return nil
	}))
	if svc.UpstreamBreaker != nil {
		health.RegisterCircuitBreaker(breakerUpstream, svc.UpstreamBreaker)
	}
	if db != nil {
		health.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		for name, cb := range db.Breakers {
			health.RegisterCircuitBreaker(name, cb)
		}
	}

	handlers := http.Handlers{
		Catalog: http.NewHandler(svc.Catalog,
			http.WithItineraries(svc.Itineraries),
			http.WithTrending(svc.Trending),
		),
		Health: health,
	}
	if svc.Leads != nil {
		handlers.Leads = http.NewLeadHandler(svc.Leads, sink)
	}
	switch {
	case db == nil:
	case !cfg.Auth.Enabled:
		log.Warn().Msg("AUTH_ENABLED is false - admin routes are not mounted")
	default:
		handlers.Admin = http.NewAdminHandler(http.AdminServices{
			Catalog:     svc.Catalog,
			Packages:    svc.Packages,
			Itineraries: svc.Itineraries,
			Trending:    svc.Trending,
			Leads:       svc.Leads,
			Logs:        svc.Logging,
		}, sink)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.EnableAuth = cfg.Auth.Enabled
	routerCfg.APIKeys = cfg.Auth.APIKeys
	routerCfg.EnableIdempotency = true
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.AuditSink = sink
	routerCfg.AuthService = svc.Auth

	return &RouterComponents{
		Handlers: handlers,
		Config:   routerCfg,
	}
}
