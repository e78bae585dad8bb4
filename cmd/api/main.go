package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"audio-tour-service/internal/auth"
	authRepoPg "audio-tour-service/internal/auth/postgres"
	"audio-tour-service/internal/config"
	"audio-tour-service/internal/database"
	"audio-tour-service/internal/logging"
	"audio-tour-service/internal/observability"

	listeningHttp "audio-tour-service/internal/listening/adapters/http/fiber"
	listeningRepoPg "audio-tour-service/internal/listening/adapters/postgres"
	listeningUsecase "audio-tour-service/internal/listening/core/usecase"

	statisticsHttp "audio-tour-service/internal/statistics/adapters/http/fiber"
	statisticsRepoPg "audio-tour-service/internal/statistics/adapters/postgres"
	statisticsUsecase "audio-tour-service/internal/statistics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "audio-tour-service/docs"
)

// @title Audio Tour Service API
// @version 1.0
// @description Listening capture and admin statistics for paid audio tours.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Config
	cfg, err := config.Load(config.Options{})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// DB connection
	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate database")
		}
		logging.Info().Msg("database migrations applied")
	}

	metrics, err := observability.NewProvider()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to register metrics")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build token manager")
	}

	// Repositories
	userRepository := authRepoPg.NewUserRepository(authRepoPg.NewSQLDB(db))
	listeningRepository := listeningRepoPg.NewListeningRepository(listeningRepoPg.NewSQLDB(db))
	statisticsRepository := statisticsRepoPg.NewStatisticsRepository(statisticsRepoPg.NewSQLDB(db))

	// Usecases
	loc := cfg.Statistics.Location()
	recordListeningUC := listeningUsecase.NewRecordListeningUseCase(listeningRepository)
	getStatisticsUC := statisticsUsecase.NewGetStatisticsUseCase(statisticsRepository,
		statisticsUsecase.WithLocation(loc),
		statisticsUsecase.WithConcurrency(cfg.Statistics.QueryConcurrency),
		statisticsUsecase.WithRecorder(metrics),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logging.Middleware())
	app.Use(metrics.Middleware())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	// statistics endpoints (admin only)
	statisticsHandler := statisticsHttp.NewStatisticsHandler(getStatisticsUC, loc)
	statisticsHandler.Register(app.Group("/statistics", auth.RequireRole(tokens, userRepository, auth.RoleAdmin)))

	// listening endpoints
	listeningHandler := listeningHttp.NewListeningHandler(recordListeningUC)
	listeningHandler.Register(app.Group("/listening", auth.RequireRole(tokens, userRepository, auth.RoleUser)))

	// Swagger
	if cfg.Server.EnableDocs {
		app.Get("/docs/*", fiberSwagger.WrapHandler)
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.ListenAddr); err != nil {
			logging.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logging.Info().
		Str("addr", cfg.Server.ListenAddr).
		Str("timezone", loc.String()).
		Int("query_concurrency", cfg.Statistics.QueryConcurrency).
		Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logging.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("fiber shutdown error")
	}

	logging.Info().Msg("server exiting")
}
