// Command web serves the survey analysis API over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"surveypulse/internal/analysis"
	"surveypulse/internal/classifier"
	"surveypulse/internal/config"
	"surveypulse/internal/infrastructure"
	"surveypulse/internal/normalizer"
	"surveypulse/internal/session"
	transport "surveypulse/internal/transport/http"
	"surveypulse/pkg/contracts"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	categories, err := config.LoadCategories(cfg.Categories)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	cls := classifier.New(categories)

	defaults := cfg.Analysis.Settings()
	norm := normalizer.New(normalizer.Options{
		ScaleMin: defaults.ScaleMin,
		ScaleMax: defaults.ScaleMax,
		Classify: cls.Classify,
		Logger:   logger,
	})

	handler := transport.NewHandler(transport.HandlerConfig{
		Store:      session.NewStore(),
		Engine:     analysis.NewEngine(logger),
		Normalizer: norm,
		Classify:   cls.Classify,
		Defaults:   defaults,
		MaxUpload:  cfg.Server.MaxUploadBytes,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      transport.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("version", contracts.GetFullVersionString()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
