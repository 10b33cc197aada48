package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/bootstrap"
	"github.com/user/company-analyzer/internal/delivery/http/handler"
	"github.com/user/company-analyzer/internal/delivery/http/router"
	"github.com/user/company-analyzer/pkg/config"
	"github.com/user/company-analyzer/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer log.Sync()

	// --- Service graph ---
	app, err := bootstrap.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize analysis service", zap.Error(err))
	}
	defer app.Close()

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(app.Service, app.Store, log)
	httpRouter := router.New(apiHandler, router.Options{
		Logger:         log,
		SubmitLimit:    cfg.RateLimit,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("port", cfg.ServerPort))

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := app.Service.Wait(ctx); err != nil {
		log.Warn("analyses still running at shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
