package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/db"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/repository"
	"github.com/windoze95/paleofinder-api/internal/router"
	"github.com/windoze95/paleofinder-api/internal/scraper"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load the recipe site markers, falling back to the built-in defaults
	markers, err := config.LoadMarkers(cfg.EnvVars.MarkersPath)
	if err != nil {
		logger.Get().Fatal("failed to load markers", zap.Error(err))
	}
	cfg.Markers = markers

	// Connect to the database
	database, err := db.New(cfg)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	fetcher := scraper.NewHTTPFetcher(scraper.WithTimeout(cfg.EnvVars.FetchTimeout))
	r := router.SetupRouter(ctx, cfg, repository.NewUserRepository(database), fetcher)

	srv := &http.Server{
		Addr:    ":" + cfg.EnvVars.Port,
		Handler: r,
	}

	go func() {
		logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port), zap.String("listing_url", cfg.EnvVars.ListingURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Get().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
