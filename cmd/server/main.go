// Package main implements the entry point for the items API server: a small
// CRUD HTTP API over a single resource, backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/riverline/items-api/internal/config"
	"github.com/riverline/items-api/internal/platform/logger"
	"github.com/riverline/items-api/internal/platform/metrics"
	"github.com/riverline/items-api/internal/platform/postgres"
	"github.com/riverline/items-api/internal/service"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up|down|status) and exit")
	flag.Parse()

	// Load a local .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd); err != nil {
			appLogger.Error("migration failed", "command", *migrateCmd, "error", err)
			log.Fatalf("migration %q failed: %v", *migrateCmd, err)
		}
		return
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	if err := metrics.Register(nil); err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	itemStore := postgres.NewPostgresItemStore(db, appLogger)
	itemService := service.NewItemService(itemStore, appLogger)
	router := setupRouter(itemService, appLogger)

	if err := startHTTPServer(context.Background(), cfg.Server, router, appLogger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
