package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pdfdecrypt/docs"
	"pdfdecrypt/internal/codec"
	"pdfdecrypt/internal/config"
	"pdfdecrypt/internal/database"
	"pdfdecrypt/internal/database/migration"
	"pdfdecrypt/internal/decrypt"
	handlers "pdfdecrypt/internal/http/handler"
	"pdfdecrypt/internal/http/middleware"
	"pdfdecrypt/internal/logger"
	"pdfdecrypt/internal/metrics"
	"pdfdecrypt/internal/otel"
	"pdfdecrypt/internal/repository/postgres"
	"pdfdecrypt/internal/service"
)

// @title PDF Decrypt API
// @version 1.0
// @description Removes password protection from uploaded PDF documents.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		// Logger config is broken; fall back so the failure is still visible.
		log = zap.Must(zap.NewProduction())
		log.Fatal("invalid logger configuration", zap.Error(err))
	}

	if err := run(cfg, log); err != nil {
		_ = log.Sync()
		log.Fatal("server exited", zap.Error(err))
	}
	_ = log.Sync()
}

// run wires and serves the application until the listener stops. Deferred
// cleanup runs before an error is returned to main.
func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	outcomeMetrics, err := metrics.NewOutcomeMetrics(reg)
	if err != nil {
		return fmt.Errorf("register outcome metrics: %w", err)
	}
	observers := decrypt.Observers{outcomeMetrics}

	var (
		db       *sql.DB
		auditSvc service.AuditService
	)
	if cfg.AuditEnabled {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect audit database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrate audit schema: %w", err)
		}

		auditSvc = service.NewAuditService(postgres.NewAuditPostgres(db), log)
		observers = append(observers, auditSvc)
	}

	corePort := logger.Port(log.With(zap.String("component", "decrypt")))
	engine := decrypt.NewEngine(codec.NewPDFCPU(), corePort)

	app := fiber.New(fiber.Config{
		AppName:               "pdfdecrypt",
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             cfg.HTTP.BodyLimit(),
		ReadTimeout:           cfg.HTTP.ReadTimeout(),
		WriteTimeout:          cfg.HTTP.WriteTimeout(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))

	if cfg.MetricsEnabled {
		promMiddleware, err := middleware.NewPrometheusMiddleware(reg, "/health", "/healthz")
		if err != nil {
			return fmt.Errorf("register http metrics: %w", err)
		}
		app.Use(promMiddleware.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:        db,
		Validator: decrypt.NewValidator(corePort),
		Engine:    engine,
		Observer:  observers,
		Audit:     auditSvc,
		Log:       log,
		APIKey:    cfg.APIKey,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout()))
		if err := app.ShutdownWithTimeout(cfg.HTTP.ShutdownTimeout()); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server starting",
		zap.String("addr", addr),
		zap.String("app_host", cfg.AppHost),
		zap.Bool("audit_enabled", cfg.AuditEnabled),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.Bool("api_key_required", cfg.APIKey != ""),
	)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	log.Info("server stopped")
	return nil
}
