package main

import (
	"fmt"

	config "clock-client/configs"
	"clock-client/pkg/logger"
	"clock-client/pkg/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	clockService *services.ClockService
}

func newApp() (*app, error) {
	// .envがなくても環境変数だけで動作する
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if envErr != nil {
		log.Debug(".env file not loaded", zap.Error(envErr))
	}

	return &app{
		cfg:          cfg,
		log:          log,
		clockService: services.NewClockServiceFromConfig(cfg, log),
	}, nil
}
