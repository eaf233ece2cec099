// Command validate-config checks the environment before a deployment:
// config parses, the database is reachable and the mail settings are
// present. Mirrors the preflight a fresh install should run.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/promedhq/promed/internal/config"
	"github.com/promedhq/promed/internal/database"
)

func main() {
	fmt.Println("Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("configuration invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration valid.")
	fmt.Printf("  Secret key:    %s\n", mask(cfg.SecretKey))
	fmt.Printf("  Base URL:      %s\n", cfg.BaseURL)
	fmt.Printf("  DB driver:     %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "postgres" {
		fmt.Printf("  DB host:       %s:%s/%s\n", cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName)
	} else {
		fmt.Printf("  DB path:       %s\n", cfg.DB.Path)
	}
	fmt.Printf("  Mail host:     %s:%d\n", cfg.Mail.Host, cfg.Mail.Port)
	fmt.Printf("  Mail username: %s\n", mask(cfg.Mail.Username))
	fmt.Printf("  Alert hour:    %02d:00\n", cfg.Alerts.Hour)
	fmt.Printf("  Session store: %s\n", cfg.Session.Store)

	if cfg.Mail.Username == "" || cfg.Mail.Password == "" {
		fmt.Println("warning: mail credentials not set; expiry alerts will fail to send")
	}

	fmt.Println("Connecting to database...")
	if _, err := database.New(cfg.DB); err != nil {
		fmt.Printf("database check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database reachable, schema up to date.")
}

func mask(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
