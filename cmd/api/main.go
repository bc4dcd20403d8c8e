// @title AI-Powered Quiz Platform API
// @version 1.0
// @description Backend API for generating and taking quizzes from uploaded documents.
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

	_ "github.com/Priyanka33591/AI-Powered-Quiz-Platform/cmd/api/docs"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/adapter"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/adapter/extraction"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/adapter/quizgen"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/cache"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/database"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/handler"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/logger"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/middleware"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/repository"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/service"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

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

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.DB.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to PostgreSQL")

	// Initialize repositories
	quizRepository := repository.NewSQLXQuizRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize document extraction and question generation
	extractor := extraction.NewDocumentExtractor(cfg.OCR.Language)
	generator, err := quizgen.NewGenerator(cfg.LLM, cfg.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}
	appLogger.Info("Question generator initialized",
		zap.String("model", cfg.LLM.Model),
		zap.String("baseURL", cfg.LLM.BaseURL))

	// Initialize services
	quizService := service.NewQuizService(quizRepository, resultRepository, extractor, generator, cacheAdapter, cfg)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	userService := service.NewUserService(userRepository)

	// Initialize handlers
	validator := validation.NewValidator(cfg.Generation)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService, quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// Quiz routes (all protected)
	quizGroup := apiGroup.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Post("/upload", quizHandler.UploadQuiz)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Post("/:id/submit", quizHandler.SubmitQuiz)

	// Result routes
	apiGroup.Get("/results/:id", middleware.Protected(authService), quizHandler.GetResult)

	// User routes
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Get("/me/results", userHandler.GetMyResults)
	userGroup.Get("/me/stats", userHandler.GetMyStats)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
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
