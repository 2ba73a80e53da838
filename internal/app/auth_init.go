// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/service"
)

const bootstrapTimeout = 5 * time.Second

// minAdminPasswordLen matches the login request validation.
const minAdminPasswordLen = 8

// initializeAdminUser creates the bootstrap admin account from config when
// it does not exist yet. It is a no-op unless both email and password are set.
func initializeAdminUser(ctx context.Context, auth service.AuthService, cfg config.AuthConfig) error {
	if auth == nil || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if len(cfg.AdminPassword) < minAdminPasswordLen {
		log.Warn().Msg("ADMIN_PASSWORD is shorter than 8 characters - admin user not created")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	return auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
}
