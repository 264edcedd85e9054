package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Om-Ravindra-Patil/portfolio/internal/config"
	"github.com/Om-Ravindra-Patil/portfolio/internal/logging"
	"github.com/Om-Ravindra-Patil/portfolio/internal/store"
)

func main() {
	path := os.Getenv("PORTFOLIO_CONFIG")
	if path == "" {
		path = "portfolio.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("path", cfg.DBPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer st.Close()

	srv, err := newServer(cfg, logger, st)
	if err != nil {
		logger.Error("failed to build server", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.AdminPassword == config.Default().AdminPassword {
		logger.Warn("using default admin password; set PORTFOLIO_ADMIN_PASSWORD")
	}
	logger.Info("visitor tracking enabled with hashed IP addresses")

	go srv.cleanupVisitors(context.Background())

	logger.Info("listening", slog.String("addr", cfg.Addr()))
	if err := srv.routes().Run(cfg.Addr()); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
