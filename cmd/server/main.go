package main

import (
	"Pereval/internal/config"
	"Pereval/internal/handlers"
	"Pereval/internal/middleware"
	"Pereval/internal/repo"
	"Pereval/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	newLogger := zap.NewProduction
	if cfg.Debug {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.DatabaseDSN == "" {
		sugar.Fatalw("database is not configured", "hint", "set DATABASE_URI or FSTR_DB_HOST")
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store := repo.NewStore(gormDB)
	perevalService := service.NewPerevalService(store, sugar)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := handlers.NewHandler(perevalService, sugar, cfg, registry)

	server := &http.Server{
		Addr:    cfg.BaseURL,
		Handler: h.Router,
	}

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"ShutdownTimeout", cfg.ShutdownTimeout,
		"BodyMaxSizeMB", cfg.BodyMaxSizeMB,
		"Debug", cfg.Debug,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("HTTP server shutdown error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}

	sugar.Infow("Server stopped")
}
