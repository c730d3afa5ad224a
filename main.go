package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"dietbro/internal/config"
	"dietbro/internal/handlers"
	"dietbro/internal/middleware"
	"dietbro/internal/repositories"
	"dietbro/internal/services"
	"dietbro/pkg/mongodb"
	"dietbro/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- MongoDB ---
	// The single client is opened once and held for the process lifetime.
	mongoClient, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database()

	// --- Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	blogRepo := repositories.NewMongoBlogRepository(db)

	// Unique indexes on email/phone are the final arbiter for registration
	// races, so index creation failing is a startup error.
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to ensure user indexes: %v", err)
	}
	if err := blogRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to ensure blog indexes: %v", err)
	}
	cancelIndex()

	// --- Event publisher (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	// --- Services ---
	userService := services.NewUserService(userRepo, events)
	blogService := services.NewBlogService(blogRepo, events)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	planHandler := handlers.NewPlanHandler()

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(cfg.IsProduction()),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowCredentials: true,
	}))

	// --- API Routes ---
	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	blogHandler.RegisterRoutes(api)
	planHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	api.Get("/health", func(c *fiber.Ctx) error {
		if err := mongoClient.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Database unreachable",
			})
		}
		return c.JSON(fiber.Map{
			"success":     true,
			"message":     "Dietbro API is running!",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": cfg.Environment,
		})
	})

	// --- Root Endpoint ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Dietbro API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":    "/api/health",
				"users":     "/api/users",
				"userStats": "/api/users/stats",
				"blogs":     "/api/blogs",
				"blogStats": "/api/blogs/stats",
				"plans":     "/api/plans",
			},
		})
	})

	// 404 for anything no route matched; must be registered last.
	app.Use(handlers.NotFoundHandler)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s (env: %s)", cfg.Port, cfg.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Close(shutdownCtx); err != nil {
		log.Printf("Error during MongoDB disconnect: %v", err)
	}

	log.Println("Server gracefully stopped")
}
