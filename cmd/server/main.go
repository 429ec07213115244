// Command server runs the PawPal HTTP API.
//
// Configuration comes from the environment (optionally via a .env file in
// development). The process wires SQLite storage, disk-backed media, JWT
// verification, OpenTelemetry tracing and the Gin router, then serves until
// SIGINT/SIGTERM and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pawpal/pawpal-backend/internal/auth"
	"github.com/pawpal/pawpal-backend/internal/config"
	httpapi "github.com/pawpal/pawpal-backend/internal/http"
	"github.com/pawpal/pawpal-backend/internal/observability"
	"github.com/pawpal/pawpal-backend/internal/repo"
	"github.com/pawpal/pawpal-backend/internal/storage"
	"github.com/pawpal/pawpal-backend/internal/sysutil"

	_ "github.com/pawpal/pawpal-backend/docs"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title        PawPal API
// @version      1.0
// @description  Community marketplace for street-dog adoption: listings, adoption requests, reports and moderation.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin failed, continuing without db spans")
		}
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := repo.SeedPersonalityTags(db); err != nil {
		log.Fatal().Err(err).Msg("tag seeding failed")
	}

	blobs, err := storage.NewDiskStore(cfg.MediaPath, cfg.MediaURLPrefix)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.MediaPath).Msg("media store init failed")
	}

	// Router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, blobs, auth.NewJWTVerifier(cfg.JWTSecret), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown error")
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("database close error")
		}
	}
	log.Info().Msg("server stopped")
}
