package main

import (
	"fmt"
	"os"

	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/logger"
	"fleet-service/internal/observability/metrics"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	reportRepo := repository.NewReportRepository(database)
	ledgerRepo := repository.NewLedgerRepository(database)
	fleetRepo := repository.NewFleetRepository(database)
	reportService := service.NewReportService(reportRepo, cfg.Reports.DefaultDays, cfg.Reports.MaxDays)
	ledgerService := service.NewLedgerService(ledgerRepo)
	fleetService := service.NewFleetService(fleetRepo)

	handler := httphandler.NewHandler(reportService, ledgerService, fleetService, appLogger)
	router := httphandler.NewRouter(handler, cfg, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
