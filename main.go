package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveillance-map/be/config"
	"surveillance-map/be/database"
	"surveillance-map/be/logging"
	"surveillance-map/be/services"
	"surveillance-map/be/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		logging.Info().Msg("No .env file found, using environment variables")
	}

	backend, err := openBackend(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize camera store")
	}
	defer backend.Close()

	authService, err := services.NewAuthService(cfg.Admin, cfg.JWT)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize auth")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := services.NewHub()
	go hub.Run(ctx)

	cameraService := services.NewCameraService(backend, hub)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := setupRouter(routerDeps{cfg: cfg, auth: authService, cameras: cameraService, hub: hub})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to set up router")
	}

	logging.Info().
		Str("port", cfg.Server.Port).
		Str("store", backend.Name()).
		Int("cameras", cameraService.Count(ctx)).
		Str("admin", cfg.Admin.Username).
		Msg("Camera registry server starting")
	if cfg.Admin.UsesDefaultCredentials() {
		logging.Warn().Msg("Default admin credentials in use, set GOD_ACCOUNT_USERNAME and GOD_ACCOUNT_PASSWORD_HASH")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("Failed to start server")
	}
	logging.Info().Msg("Server stopped")
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	if cfg.Store.Backend == "postgres" {
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		return store.NewGormBackend(db), nil
	}
	return store.Open(cfg.Store)
}
