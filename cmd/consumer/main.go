package main

import (
	"github.com/kamepallinandini997/leave-management-poc/internal/app"
	"github.com/kamepallinandini997/leave-management-poc/internal/bootstrap"
	"github.com/kamepallinandini997/leave-management-poc/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(*cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
