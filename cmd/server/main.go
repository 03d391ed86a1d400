package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/retailstock/backend/docs"
	"github.com/retailstock/backend/internal/application/reconciliation"
	"github.com/retailstock/backend/internal/infrastructure/cache"
	"github.com/retailstock/backend/internal/infrastructure/config"
	"github.com/retailstock/backend/internal/infrastructure/event"
	"github.com/retailstock/backend/internal/infrastructure/logger"
	"github.com/retailstock/backend/internal/infrastructure/migration"
	"github.com/retailstock/backend/internal/infrastructure/persistence"
	"github.com/retailstock/backend/internal/infrastructure/scheduler"
	"github.com/retailstock/backend/internal/infrastructure/telemetry"
	"github.com/retailstock/backend/internal/interfaces/http/handler"
	"github.com/retailstock/backend/internal/interfaces/http/middleware"
	"github.com/retailstock/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// low stock alerts for the same record are raised at most once a day
const lowStockAlertTTL = 24 * time.Hour

//	@title			Retail Stock API
//	@version		1.0
//	@description	Daily inventory reconciliation for perishable stock, per location.

//	@contact.name	API Support
//	@contact.url	https://github.com/retailstock/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Name)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = baseLog.Sync() }()

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() { _ = loggerProvider.Shutdown(context.Background()) }()
	log := loggerProvider.Bridge(baseLog, cfg.Telemetry.ServiceName, zapcore.InfoLevel)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		Locations:       cfg.Inventory.Locations,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() { _ = profiler.Stop() }()
	if profiler.IsEnabled() && cfg.Telemetry.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting inventory reconciliation backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Strings("locations", cfg.Inventory.Locations),
		zap.String("timezone", cfg.Inventory.Timezone),
	)

	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to prepare database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	caches := cache.New(ctx, cfg.Redis, log)
	defer func() { _ = caches.Close() }()

	eventBus := event.NewInMemoryEventBus(log)
	lowStock := reconciliation.NewLowStockHandler(log)
	eventBus.Subscribe(event.NewIdempotentHandler(lowStock, caches.Idempotency, reconciliation.LowStockKey, lowStockAlertTTL, log))

	if cfg.Kafka.Enabled {
		producer, err := event.NewKafkaProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.Error(err))
		}
		forwarder := event.NewKafkaForwarder(producer, cfg.Kafka.Topic, event.NewEventSerializer(), log)
		defer func() { _ = forwarder.Close() }()
		eventBus.Subscribe(forwarder)
		log.Info("Forwarding reconciliation events to Kafka", zap.String("topic", cfg.Kafka.Topic))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() { _ = eventBus.Stop(context.Background()) }()

	service := reconciliation.NewService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormDailyRecordRepository(db.DB),
		reconciliation.Options{
			Locations: cfg.Inventory.Locations,
			Timezone:  cfg.Inventory.Location(),
		},
		log,
	)
	service.SetCache(caches.Records)
	service.SetEventPublisher(eventBus)
	metrics, err := telemetry.NewReconciliationMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}
	service.SetMetrics(metrics)

	if cfg.Inventory.AutoOpen {
		hour, minute, _ := cfg.Inventory.OpenTime()
		opener := scheduler.NewDayOpener(scheduler.DayOpenerConfig{
			Locations:  cfg.Inventory.Locations,
			Timezone:   cfg.Inventory.Location(),
			OpenHour:   hour,
			OpenMinute: minute,
		}, func(ctx context.Context, location string, day time.Time) error {
			_, err := service.OpenDay(ctx, location, day)
			return err
		}, log)
		if err := opener.Start(ctx); err != nil {
			log.Fatal("Failed to start day opener", zap.Error(err))
		}
		defer func() { _ = opener.Stop(context.Background()) }()
	}

	engine := newEngine(cfg, log, router.Handlers{
		Inventory: handler.NewInventoryHandler(service),
		Products:  handler.NewProductHandler(service),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"database": db.Ping,
			"cache":    caches.Ping,
		}),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully", zap.Int64("event_handler_failures", eventBus.Failures()))
}

// openDatabase connects and brings the schema up to date.
// Postgres runs the versioned migrations; sqlite is created from the models.
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      logger.MapGormLogLevel(cfg.Log.GormLevel),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		TraceQueries:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		return nil, err
	}

	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Database ready", zap.String("driver", db.Driver), zap.String("path", cfg.Database.Path))
		return db, nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	migrator, err := migration.New(sqlDB, cfg.Database.MigrationsPath, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	// closing the migrator would close the shared pool
	if err := migrator.Up(); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("Database ready", zap.String("driver", db.Driver), zap.String("host", cfg.Database.Host))
	return db, nil
}

// newEngine builds the gin engine with the middleware chain and routes
func newEngine(cfg *config.Config, log *zap.Logger, handlers router.Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(middleware.ProfilingWithConfig(profilingConfig(cfg.Telemetry.ProfilingEnabled)))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(maxBodyBytes))

	router.Mount(engine, handlers)
	if !cfg.HTTP.DisableSwagger {
		router.MountSwagger(engine)
	}
	return engine
}

func profilingConfig(enabled bool) middleware.ProfilingConfig {
	pc := middleware.DefaultProfilingConfig()
	pc.Enabled = enabled
	return pc
}

const maxBodyBytes = 1 << 20

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
