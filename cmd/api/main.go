package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user/jaundice-service/internal/app"
	"github.com/user/jaundice-service/internal/delivery/http/handler"
	"github.com/user/jaundice-service/internal/delivery/http/router"
	"github.com/user/jaundice-service/pkg/config"
	"github.com/user/jaundice-service/pkg/logger"
	"github.com/user/jaundice-service/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()
	log.Info("Logger initialized", zap.String("level", cfg.LogLevel))

	// --- Metrics ---
	metrics.Init()

	// --- Application ---
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.Build(startupCtx, cfg, log)
	cancelStartup()
	if err != nil {
		log.Fatal("could not start application", zap.Error(err))
	}
	defer application.Close()

	// --- HTTP Server ---
	requestTimeout := cfg.RequestTimeout()
	log.Info("Request timeout derived", zap.Duration("timeout", requestTimeout))
	apiHandler := handler.NewHandler(application.Rating, application.Deps, log)
	httpRouter := router.New(apiHandler, log, requestTimeout)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exiting")
}
