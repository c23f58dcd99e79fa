package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kademe/manage-user/internal/api"
	"github.com/kademe/manage-user/internal/api/handler"
	"github.com/kademe/manage-user/internal/app"
	"github.com/kademe/manage-user/internal/config"
	"github.com/kademe/manage-user/internal/metrics"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.Build(startCtx, cfg)
	startCancel()
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	m := metrics.New()

	var pinger handler.DBPinger
	if application.DB != nil {
		pinger = application.DB
	}

	router := api.NewRouter(api.RouterDeps{
		ManageUser:    handler.NewManageUserHandler(application.Service, m),
		DBPinger:      pinger,
		Version:       cfg.Version,
		Configured:    application.Configured,
		AllowedOrigin: cfg.AllowedOrigin,
		Metrics:       m.Handler(),
		OpenAPISpec:   api.OpenAPISpec,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting manage-user server",
			"port", cfg.Port, "version", cfg.Version, "configured", application.Configured)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(logHandler))
}
