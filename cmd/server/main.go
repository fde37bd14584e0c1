package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"staynest-hostels/internal/adapters/http/middleware"
	"staynest-hostels/internal/adapters/http/routes"
	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/config"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"

	_ "staynest-hostels/docs" // Swagger docs
)

// @title StayNest Hostels API
// @version 1.0
// @description Hostel and PG rental marketplace backend: property inventory, bed bookings, student wallet and KYC.

// @contact.name API Support
// @contact.email support@staynest.in

// @host api.staynest.in
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the admin account and the base location tree
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Redis listing cache (optional; nil client degrades to no-op)
	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password)
	defer cacheClient.Close()

	// Scheduled jobs: notice-bed release (02:30 daily) and token purge
	propertyService := services.NewPropertyService(db, repositories.NewPropertyRepository(db))
	cronService := services.NewCronService(propertyService, repositories.NewRefreshTokenRepository(db))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "StayNest Hostels API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cacheClient, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
