// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
