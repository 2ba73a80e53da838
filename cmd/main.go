// Package main is the entry point for the tour-package-service application.
//
// @title           Tour Package Service API
// @version         1.0.0
// @description     Catalog, inquiry and administration API for a travel agency's tour packages.
//
//	Packages come from an upstream package list merged with packages managed in MongoDB.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/tour-package-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key. Used when JWT auth is not configured.
//
// @tag.name        Catalog
// @tag.description Package browsing, categories and destinations
//
// @tag.name        Leads
// @tag.description Customer inquiries
//
// @tag.name        Admin
// @tag.description Catalog administration
//
// @tag.name        Auth
// @tag.description Admin authentication
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/tour-package-service/docs" // swagger docs

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/app"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	application.Start(context.Background())

	server := app.NewServer(application.Router, cfg.Server)
	runErr := server.Run()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
