package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bulkmart/internal/area"
	"bulkmart/internal/auth"
	"bulkmart/internal/config"
	"bulkmart/internal/database"
	"bulkmart/internal/events"
	"bulkmart/internal/handler"
	"bulkmart/internal/repository"
	"bulkmart/internal/router"
	"bulkmart/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bulkmart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	offerRepo := repository.NewOfferRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize delivery-area registry with S3 and local fallback
	areas, err := newAreaRegistry(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize area registry: %w", err)
	}
	defer areas.Close()

	// Initialize order event publisher
	publisher, err := events.NewPublisher(ctx, cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	offerService := service.NewOfferService(offerRepo, productRepo, areas, logger)
	cartService := service.NewCartService(cartRepo, offerRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, notificationRepo, publisher, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Auth:         handler.NewAuthHandler(authService, logger),
		Product:      handler.NewProductHandler(productService, offerService, logger),
		Offer:        handler.NewOfferHandler(offerService, logger),
		Cart:         handler.NewCartHandler(cartService, orderService, logger),
		Order:        handler.NewOrderHandler(orderService, logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
	}, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newAreaRegistry loads the serviceable delivery areas, or accepts every area when the
// registry is disabled.
func newAreaRegistry(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (area.Registry, error) {
	if !cfg.Areas.Enabled {
		logger.Info().Msg("delivery-area registry disabled, accepting all areas")
		return area.AllowAll(), nil
	}

	fileLoader := area.NewFileLoader(logger)
	var loader area.Loader = fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := area.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = area.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
		}
	} else {
		logger.Info().Msg("using local file system for area files (S3 disabled)")
	}

	return area.NewRegistry(ctx, area.RegistryConfig{
		Files:    cfg.Areas.Files,
		MinMatch: cfg.Areas.MinMatch,
	}, loader, logger)
}
