// @title MedQbank API
// @version 1.0
// @description Question bank API: chapters, modules, filtered practice sessions and the session player.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "medqbank/cmd/api/docs"
	"medqbank/internal/adapter"
	"medqbank/internal/cache"
	"medqbank/internal/config"
	"medqbank/internal/database"
	"medqbank/internal/domain"
	"medqbank/internal/handler"
	"medqbank/internal/logger"
	"medqbank/internal/middleware"
	"medqbank/internal/repository"
	"medqbank/internal/service"
	"medqbank/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(startCtx, cfg)
	cancelStart()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(db, cfg.DB.Driver); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis is optional: without it the catalog is read from the database on
	// every request, the player cursor resets and logout cannot revoke tokens.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	// Repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	catalogRepository := repository.NewCatalogDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	sessionRepository := repository.NewSessionDatabaseAdapter(db, txManager)
	answerRepository := repository.NewAnswerDatabaseAdapter(db)
	profileRepository := repository.NewProfileDatabaseAdapter(db)

	// Services
	catalogService := service.NewCatalogService(catalogRepository, cacheAdapter, cfg)
	sessionService := service.NewSessionService(
		questionRepository,
		sessionRepository,
		answerRepository,
		catalogRepository,
		cacheAdapter,
		cfg,
	)
	authService, err := service.NewAuthService(profileRepository, cacheAdapter, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	validator := validation.NewValidator()
	handlers := handler.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogService),
		Qbank:      handler.NewQbankHandler(catalogService, sessionService, validator),
		Session:    handler.NewSessionHandler(sessionService, validator),
		Auth:       handler.NewAuthHandler(authService),
		Health:     handler.NewHealthHandler(db, cacheAdapter),
		Validation: middleware.NewValidationMiddleware(validator),
	}

	app := fiber.New(fiber.Config{
		AppName:      "medqbank",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.SetupRoutes(app, handlers, authService)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("db_driver", cfg.DB.Driver),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
