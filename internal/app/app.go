// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/http"
	"github.com/guttosm/tour-package-service/internal/middleware"
)

// App holds the wired router and the background components it owns.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Bus      *events.Bus

	cfg         config.Config
	db          *DatabaseComponents
	auditLogger *middleware.AsyncLogger
	unsubscribe func()

	runCancel context.CancelFunc
	runDone   sync.WaitGroup
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	bus := events.NewBus()
	db := InitializeDatabase(cfg.Database)
	svc := InitializeServices(cfg, db, bus)

	a := &App{
		Services: svc,
		Bus:      bus,
		cfg:      cfg,
		db:       db,
	}

	// The sink stays a nil interface without a database.
	var sink middleware.LogSink
	if svc.Logging != nil {
		a.auditLogger = middleware.NewAsyncLogger(svc.Logging, middleware.DefaultAsyncLoggerConfig())
		sink = a.auditLogger
	}
	a.unsubscribe = subscribeEvents(bus, sink)

	if err := initializeAdminUser(context.Background(), svc.Auth, cfg.Auth); err != nil {
		log.Error().Err(err).Msg("Failed to create admin user")
	}

	rc := InitializeRouter(cfg, svc, db, sink)
	a.Router = http.NewRouter(rc.Handlers, rc.Config)
	return a
}

// Start runs the catalog refresh loop until ctx is done or Close is called.
func (a *App) Start(ctx context.Context) {
	ctx, a.runCancel = context.WithCancel(ctx)
	a.runDone.Add(1)
	go func() {
		defer a.runDone.Done()
		a.Services.Catalog.Run(ctx, a.cfg.Catalog.RefreshInterval)
	}()
}

// Close stops the refresh loop, flushes the audit log and disconnects
// from MongoDB.
func (a *App) Close(ctx context.Context) error {
	if a.runCancel != nil {
		a.runCancel()
	}
	a.runDone.Wait()

	a.unsubscribe()
	a.Services.Catalog.Close()
	a.auditLogger.Stop()

	return a.db.Close(ctx)
}
