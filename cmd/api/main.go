package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"linkmono/docs"
	"linkmono/internal/auth"
	"linkmono/internal/cache"
	"linkmono/internal/config"
	"linkmono/internal/database"
	"linkmono/internal/database/migration"
	handlers "linkmono/internal/http/handler"
	"linkmono/internal/http/middleware"
	"linkmono/internal/logger"
	"linkmono/internal/otel"
	"linkmono/internal/repository/postgres"
	"linkmono/internal/service"
	"linkmono/internal/storage"
)

// @title Link Mono API
// @version 1.0
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(os.Stderr, "info", time.UTC)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	// PostgreSQL with pooling via database/sql
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	images := newImageResolver(ctx, cfg, log)
	counts, closeCounts := newCountCache(ctx, cfg, log)
	defer func() {
		if err := closeCounts(); err != nil {
			log.Error().Err(err).Msg("count cache close failed")
		}
	}()

	profileSvc := service.NewProfileService(postgres.NewUserPostgres(db), images)
	searchSvc := service.NewSearchService(postgres.NewSearchPostgres(db), counts, images, logger.Component(log, "search"))

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Session(auth.NewVerifier(cfg.Auth.JWTSecret)))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Profiles: profileSvc,
		Search:   searchSvc,
		Metrics:  middleware.MetricsHandler(prometheus.DefaultGatherer),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info().Str("event", "shutdown").Msg("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Server.Port
	log.Info().Str("event", "listen").Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// newImageResolver presigns stored image keys when MinIO is configured.
func newImageResolver(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) *storage.ImageResolver {
	storageLog := logger.Component(log, "storage")
	if cfg.MinIO.Endpoint == "" {
		storageLog.Info().Msg("object storage disabled, image references are served as stored")
		return storage.NewImageResolver(nil, cfg.MinIO.PresignExpiry(), storageLog)
	}
	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	return storage.NewImageResolver(store, cfg.MinIO.PresignExpiry(), storageLog)
}

// newCountCache caches search counts in Redis when it is configured. The returned
// func releases the Redis pool and is safe to call for the no-op cache.
func newCountCache(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (cache.CountCache, func() error) {
	noClose := func() error { return nil }
	if cfg.Redis.Addr == "" {
		return cache.Noop{}, noClose
	}
	rc, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		cacheLog := logger.Component(log, "cache")
		cacheLog.Warn().Err(err).Msg("redis unavailable, search counts are not cached")
		return cache.Noop{}, noClose
	}
	return rc, rc.Close
}
