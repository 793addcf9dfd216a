package main

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/golang-cz/devslog"
	_ "github.com/lib/pq"

	"mdblog/internal/auth"
	"mdblog/internal/config"
	"mdblog/internal/core"
	"mdblog/internal/database"
	"mdblog/internal/utils/databaseutils"
)

type application struct {
	config  config.Config
	logger  *slog.Logger
	core    *core.Core
	auth    *auth.Auth
	session databaseutils.Session
	wg      sync.WaitGroup
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	cfg := config.Load(logger)

	db, err := database.OpenConnection(cfg.DSN)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Info("Database connection established successfully")

	if err := database.Migrate(db); err != nil {
		logger.Error("Error applying database schema", "error", err)
		os.Exit(1)
	}

	sqlTemplate := databaseutils.NewSQLTemplate(db, 3*time.Second)

	app := &application{
		config:  cfg,
		logger:  logger,
		core:    core.NewCore(db, logger, sqlTemplate),
		auth:    auth.New(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		session: databaseutils.NewSession(db),
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	logger := slog.New(handler)
	return logger
}
