package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/rickgao/kalshi-ladders/internal/api"
	"github.com/rickgao/kalshi-ladders/internal/auth"
	"github.com/rickgao/kalshi-ladders/internal/config"
	"github.com/rickgao/kalshi-ladders/internal/database"
	"github.com/rickgao/kalshi-ladders/internal/schedule"
	"github.com/rickgao/kalshi-ladders/internal/snapshot"
	"github.com/rickgao/kalshi-ladders/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/snapshotter.yaml", "path to config file")
	envFile := flag.String("env-file", "", "optional .env file loaded before config expansion")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting snapshotter",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Optional .env bootstrap so the PEM key and DB password can live in
	// environment variables referenced from the YAML config.
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Error("failed to load env file", "path", *envFile, "error", err)
			os.Exit(1)
		}
	} else {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"api_url", cfg.API.RestURL,
		"series", len(cfg.Snapshot.SeriesTickers),
		"table", cfg.Snapshot.Table,
		"interval", cfg.Scheduler.Interval,
	)

	// Load signing credentials. A missing or malformed key is fatal: the
	// process never reaches the scheduling loop without one.
	creds, err := loadCredentials(cfg)
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create API client
	apiClient := api.NewClient(
		cfg.API.RestURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	writer := snapshot.NewWriter(pool, cfg.Snapshot.Table, logger)

	runner := snapshot.New(
		snapshot.Config{
			SeriesTickers: cfg.Snapshot.SeriesTickers,
			BothSides:     cfg.Snapshot.BothSides,
		},
		apiClient,
		writer,
		logger,
	)

	// Health server for liveness monitoring
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(pool),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	// Run aligned snapshot cycles until shutdown
	scheduler := schedule.New(cfg.Scheduler.Interval, runner, logger)

	logger.Info("snapshotter running",
		"interval", cfg.Scheduler.Interval,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("scheduler stopped unexpectedly", "error", err)
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	healthServer.Shutdown(shutdownCtx)

	logger.Info("snapshotter stopped")
}

// loadCredentials prefers the inline PEM (environment-provided) and falls
// back to the key file path.
func loadCredentials(cfg *config.Config) (*auth.Credentials, error) {
	if cfg.API.PrivateKeyPEM != "" {
		return auth.LoadCredentialsFromPEM(cfg.API.KeyID, cfg.API.PrivateKeyPEM)
	}
	return auth.LoadCredentials(cfg.API.KeyID, cfg.API.PrivateKeyPath)
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(pool *pgxpool.Pool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]string),
		}

		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = "disconnected: " + err.Error()
		} else {
			health.Components["postgres"] = "connected"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
