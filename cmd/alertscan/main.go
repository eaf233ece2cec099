// Command alertscan runs a single expiry alert scan and exits. It is the
// entry point for platform schedulers (cron, systemd timers) when the
// in-process scheduler is disabled; both share the same engine.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/promedhq/promed/internal/config"
	"github.com/promedhq/promed/internal/database"
	"github.com/promedhq/promed/internal/logger"
	"github.com/promedhq/promed/internal/mail"
	"github.com/promedhq/promed/internal/repository"
	"github.com/promedhq/promed/internal/services"
)

const scanTimeout = 15 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.New(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	engine := services.NewAlertService(
		repository.NewMedicineRepository(db),
		repository.NewUserRepository(db),
		mail.NewMailer(cfg.Mail),
	)

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	report, err := engine.Scan(ctx, time.Now())
	if err != nil {
		logger.Fatal("Alert scan failed", "error", err)
	}
	logger.Info("Alert scan complete",
		"prior_sent", report.PriorSent,
		"expiry_sent", report.ExpirySent,
		"failed", report.Failed)
}
