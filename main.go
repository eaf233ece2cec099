package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/promedhq/promed/internal/config"
	"github.com/promedhq/promed/internal/database"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/logger"
	"github.com/promedhq/promed/internal/mail"
	"github.com/promedhq/promed/internal/qr"
	"github.com/promedhq/promed/internal/repository"
	"github.com/promedhq/promed/internal/scheduler"
	"github.com/promedhq/promed/internal/server"
	"github.com/promedhq/promed/internal/services"
	"github.com/promedhq/promed/internal/session"
)

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
	logger.Info("Database ready", "driver", cfg.DB.Driver)

	userRepo := repository.NewUserRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)

	userService := services.NewUserService(userRepo)
	medicineService := services.NewMedicineService(medicineRepo, qr.NewEncoder(cfg.BaseURL), cfg.QRDir)
	alertService := services.NewAlertService(medicineRepo, userRepo, mail.NewMailer(cfg.Mail))

	var sessions domain.SessionStore
	switch cfg.Session.Store {
	case "redis":
		sessions, err = session.NewRedisStore(cfg.Session.RedisHost, cfg.Session.RedisPort)
		if err != nil {
			logger.Fatal("Failed to connect session store", "error", err)
		}
	default:
		sessions = session.NewMemoryStore()
	}
	logger.Info("Session store ready", "store", cfg.Session.Store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Alerts.SchedulerEnabled {
		sched, err := scheduler.New(cfg.Alerts.Hour, alertService)
		if err != nil {
			logger.Fatal("Failed to create scheduler", "error", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(cfg, userService, medicineService, sessions)
	if err := srv.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", "error", err)
	}
	logger.Info("Server stopped")
}
