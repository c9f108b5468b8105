package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/observability"
	"media-gallery/internal/platform/server"
	"media-gallery/internal/services"
	"media-gallery/internal/web/handlers"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const shutdownTimeout = 30 * time.Second

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	obsCfg := observability.LoadConfig()
	obsCfg.Environment = cfg.Environment
	obsCfg.LogLevel = cfg.Logging.Level
	obsCfg.LogFormat = cfg.Logging.Format

	logger := observability.NewLogger(obsCfg)
	otel.SetErrorHandler(logger.OTELErrorHandler())

	provider, err := observability.NewProvider(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx).Err(err).Msg("Failed to shut down observability provider")
		}
	}()

	// Initialize dependency injection container
	container, err := services.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services container: %w", err)
	}
	defer container.Close()

	sessionCtx, stopSession := context.WithCancel(context.Background())
	defer stopSession()
	sessionErr := make(chan error, 1)
	go func() {
		sessionErr <- container.Session().Run(sessionCtx)
	}()

	handler := handlers.NewWithContainer(container)
	srv := server.New(cfg.Port, handler.Routes(), cfg.Server)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx).Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info(context.Background()).Msg("Server shutting down...")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Stop the session after the last in-flight request, so queued deletions drain
	stopSession()
	if err := <-sessionErr; err != nil {
		return err
	}

	logger.Info(shutdownCtx).Msg("Server exited")
	return nil
}
