package bootstrap

import (
	"fmt"

	"github.com/kamepallinandini997/leave-management-poc/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the process logger: console output in development, JSON
// in production, and a copy of every line in cfg.Log.File when set.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: log level %q: %w", cfg.Log.Level, err)
	}
	zcfg.Level = level

	if cfg.Log.File != "" {
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.Log.File)
	}

	return zcfg.Build()
}
