// Package app provides service initialization.
package app

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/circuitbreaker"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/service"
	"github.com/guttosm/tour-package-service/internal/service/cache"
	"github.com/guttosm/tour-package-service/internal/source"
)

// upstreamBurst is the token bucket size for upstream fetches.
const upstreamBurst = 2

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog         *service.CatalogServiceImpl
	Packages        service.PackageService
	Itineraries     service.ItineraryService
	Trending        service.TrendingService
	Leads           service.LeadService
	Logging         service.LoggingService
	Auth            service.AuthService
	UpstreamBreaker *circuitbreaker.CircuitBreaker
}

// InitializeServices builds the catalog and, when db is set, the services
// backed by MongoDB.
func InitializeServices(cfg config.Config, db *DatabaseComponents, bus *events.Bus) *ServiceComponents {
	sc := &ServiceComponents{}

	opts := []service.CatalogOption{
		service.WithEventBus(bus),
		service.WithPageSize(cfg.Catalog.PageSize),
	}
	if cfg.Catalog.SourceURL != "" {
		sc.UpstreamBreaker = circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.Database.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.Database.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.Database.CircuitBreakerTimeout,
			Name:             breakerUpstream,
			OnStateChange:    onBreakerStateChange,
		})
		opts = append(opts, service.WithUpstream(newUpstreamClient(cfg.Catalog, sc.UpstreamBreaker)))
	}
	if cfg.Catalog.SeedFile != "" {
		opts = append(opts, service.WithSeed(source.NewFileLoader(cfg.Catalog.SeedFile)))
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithBrowseCache(
			cache.NewSharded[*dto.BrowseResponse](cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards),
		))
	}
	if db != nil {
		opts = append(opts, service.WithManagedPackages(db.Packages))
	}
	if cfg.Catalog.SourceURL == "" && cfg.Catalog.SeedFile == "" && db == nil {
		log.Warn().Msg("No package source configured - catalog will stay empty")
	}

	sc.Catalog = service.NewCatalogService(opts...)

	if db == nil {
		return sc
	}

	sc.Packages = service.NewPackageService(db.Packages, sc.Catalog, bus)
	sc.Itineraries = service.NewItineraryService(db.Itineraries, sc.Catalog)
	sc.Trending = service.NewTrendingService(db.Trending)
	sc.Leads = service.NewLeadService(db.Leads, sc.Catalog, bus)
	sc.Logging = service.NewLoggingService(db.Logs)
	if cfg.Auth.Enabled && cfg.Auth.JWTSecretKey != "" {
		sc.Auth = service.NewAuthService(db.Users, service.AuthConfig{
			SecretKey:      cfg.Auth.JWTSecretKey,
			AccessTokenTTL: cfg.Auth.AccessTokenTTL,
		})
	}
	return sc
}

func newUpstreamClient(cfg config.CatalogConfig, cb *circuitbreaker.CircuitBreaker) *source.Client {
	return source.NewClient(cfg.SourceURL,
		source.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
		source.WithRetries(cfg.FetchRetries, cfg.RetryDelay),
		source.WithRateLimit(cfg.FetchRPS, upstreamBurst),
		source.WithCircuitBreaker(cb),
	)
}
