// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/circuitbreaker"
	"github.com/guttosm/tour-package-service/internal/metrics"
	"github.com/guttosm/tour-package-service/internal/repository"
)

// Circuit breaker names, also used as health check keys.
const (
	breakerPackages    = "mongodb_packages"
	breakerItineraries = "mongodb_itineraries"
	breakerTrending    = "mongodb_trending"
	breakerLogs        = "mongodb_logs"
	breakerUpstream    = "catalog_upstream"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB          *repository.MongoDB
	Packages    repository.PackagesRepositoryInterface
	Itineraries repository.ItinerariesRepositoryInterface
	Trending    repository.TrendingRepositoryInterface
	Leads       repository.LeadsRepositoryInterface
	Logs        repository.LogsRepositoryInterface
	Users       repository.UsersRepositoryInterface
	Breakers    map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories.
// It returns nil when the database is disabled or unreachable; the
// catalog then serves the upstream list without managed packages, leads
// or admin routes.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if ttlDays > 0 {
		if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
	}

	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	breakers := map[string]*circuitbreaker.CircuitBreaker{
		breakerPackages:    newRepositoryBreaker(breakerPackages, cfg),
		breakerItineraries: newRepositoryBreaker(breakerItineraries, cfg),
		breakerTrending:    newRepositoryBreaker(breakerTrending, cfg),
		breakerLogs:        newRepositoryBreaker(breakerLogs, cfg),
	}

	return &DatabaseComponents{
		DB:          db,
		Packages:    repository.NewPackagesRepositoryWithCircuitBreaker(repository.NewPackagesRepository(db), breakers[breakerPackages]),
		Itineraries: repository.NewItinerariesRepositoryWithCircuitBreaker(repository.NewItinerariesRepository(db), breakers[breakerItineraries]),
		Trending:    repository.NewTrendingRepositoryWithCircuitBreaker(repository.NewTrendingRepository(db), breakers[breakerTrending]),
		Leads:       repository.NewLeadsRepository(db),
		Logs:        repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers[breakerLogs]),
		Users:       repository.NewUsersRepository(db),
		Breakers:    breakers,
	}
}

// newRepositoryBreaker creates a breaker that ignores not-found and
// duplicate outcomes.
func newRepositoryBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsInfrastructureError,
		OnStateChange:    onBreakerStateChange,
	})
}

func onBreakerStateChange(name string, from, to circuitbreaker.State) {
	metrics.RecordCircuitState(name, int(to))
	log.Warn().
		Str("breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
