package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundfusion/internal/campaigns"
	"fundfusion/internal/config"
	"fundfusion/internal/database"
	"fundfusion/internal/donations"
	"fundfusion/internal/logger"
	"fundfusion/internal/server"
	"fundfusion/internal/session"
	"fundfusion/internal/storage"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting FundFusion API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"database", cfg.Mongo.Database,
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(startupCtx, cfg.Mongo)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	deps := server.Deps{
		DB:        db,
		Campaigns: campaigns.NewRepository(db.Campaigns()),
		Donations: donations.NewRepository(db.Donations()),
		Sessions:  session.NewManager([]byte(cfg.AccessTokenSecret), cfg.AccessTokenTTL, cfg.IsProduction()),
		Logger:    log,
	}

	if cfg.Storage.Enabled() {
		store, err := storage.New(startupCtx, cfg.Storage)
		if err != nil {
			slog.Warn("Object storage unavailable, photo uploads disabled", "error", err)
		} else {
			if err := store.EnsureBucketExists(startupCtx); err != nil {
				slog.Warn("Failed to ensure bucket exists", "error", err)
			}
			deps.Storage = store
		}
	}

	srv := server.New(cfg, deps).HTTPServer()

	go func() {
		slog.Info("FundFusion API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down FundFusion API")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if err := db.Close(ctx); err != nil {
		slog.Error("Failed to disconnect from MongoDB", "error", err)
	}

	slog.Info("FundFusion API stopped")
}
