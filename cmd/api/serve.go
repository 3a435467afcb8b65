package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"rateanalysis/docs"
	"rateanalysis/internal/config"
	"rateanalysis/internal/database"
	"rateanalysis/internal/database/migration"
	handlers "rateanalysis/internal/http/handler"
	"rateanalysis/internal/http/header"
	"rateanalysis/internal/http/middleware"
	"rateanalysis/internal/otel"
	"rateanalysis/internal/repository/postgres"
	"rateanalysis/internal/service"
	"rateanalysis/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		return err
	}

	// Deleted records are archived to object storage when an endpoint is configured.
	var archive storage.Storage
	if cfg.MinIO.Enabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		logger.Info("record archive enabled", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.Bucket)
	}

	svcs := handlers.Services{
		RaParameters:      service.NewRaParametersService(postgres.NewRaParametersPostgres(db), archive),
		WorkEstimateLeads: service.NewWorkEstimateLeadService(postgres.NewWorkEstimateLeadPostgres(db), archive),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApp(cfg, logger, db, svcs, reg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("server starting", "addr", addr, "application", cfg.ApplicationName)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}
	logger.Info("server stopped")
	return errors.Join(errs...)
}

// newApp assembles the Fiber application: middleware, operational endpoints and the
// REST resources.
func newApp(cfg *config.AppConfig, logger *slog.Logger, db handlers.Pinger, svcs handlers.Services, reg *prometheus.Registry) (*fiber.App, error) {
	alerts := header.Alerts{
		ApplicationName:   cfg.ApplicationName,
		EnableTranslation: cfg.EnableTranslation,
	}

	app := fiber.New(fiber.Config{
		AppName:                  cfg.ApplicationName,
		ErrorHandler:             handlers.ErrorHandler(alerts, logger),
		DisableStartupMessage:    true,
		DisableHeaderNormalizing: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	// RequestID adds/propagates X-Request-ID; Logger renders handler errors, so the
	// outer middlewares observe the final status.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())
	app.Use(middleware.Logger(logger))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, db, svcs, handlers.RouteConfig{
		Alerts: alerts,
		Paging: handlers.Paging{
			DefaultSize: cfg.Pagination.DefaultSize,
			MaxSize:     cfg.Pagination.MaxSize,
		},
		Logger: logger,
	})

	return app, nil
}
