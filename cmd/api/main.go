package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"uploadapi/internal/config"
	"uploadapi/internal/database"
	"uploadapi/internal/database/migration"
	handlers "uploadapi/internal/http/handler"
	"uploadapi/internal/http/middleware"
	"uploadapi/internal/logger"
	"uploadapi/internal/otel"
	"uploadapi/internal/repository/postgres"
	"uploadapi/internal/service"
	"uploadapi/internal/storage"
)

// @title Upload API
// @version 1.0
// @description Multipart file ingestion into a blob store with metadata in Postgres.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.Location(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.WithError(err).Error("tracing shutdown")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.WithError(err).Fatal("failed to migrate database")
		}
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize blob store")
	}
	log.WithFields(logrus.Fields{
		"driver":       cfg.Storage.Driver,
		"key_strategy": cfg.Storage.KeyStrategy,
	}).Info("blob_store_ready")

	metrics, err := service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register ingestion metrics")
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	uploadRepo := postgres.NewUploadPostgres(db)
	uploadSvc := service.NewUploadService(store, uploadRepo,
		service.WithLogger(log),
		service.WithKeyStrategy(cfg.Storage.KeyStrategy),
		service.WithMetrics(metrics),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitBytes(),
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, uploadSvc, log)

	handlers.RegisterDocs(app, cfg.AppHost)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http_server_listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("failed to start server")
		}
	case <-ctx.Done():
		log.Info("shutdown_requested")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.WithError(err).Error("http shutdown")
		}
	}
}
