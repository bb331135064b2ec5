package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/valkiss024/product-catalog/internal/handlers"
	"github.com/valkiss024/product-catalog/internal/repositories"
	"github.com/valkiss024/product-catalog/internal/services"
	"github.com/valkiss024/product-catalog/pkg/config"
	"github.com/valkiss024/product-catalog/pkg/database"
	"github.com/valkiss024/product-catalog/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Storage ---
	// With no DATABASE_URI the service runs against the in-memory store,
	// which is enough for local development and demos.
	var productRepo repositories.ProductRepository
	if cfg.DatabaseURI != "" {
		db, err := database.Connect(cfg.DatabaseURI)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	} else {
		log.Println("DATABASE_URI not set, using in-memory product store")
		productRepo = repositories.NewMemoryProductRepository()
	}

	// --- Event publishing ---
	// The broker is optional; a CRUD deployment without RabbitMQ still
	// serves requests, it just emits no lifecycle events.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Services and handlers ---
	productService := services.NewProductService(productRepo, events)
	productHandler := handlers.NewProductHandler(productService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	productHandler.RegisterRoutes(app)

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
