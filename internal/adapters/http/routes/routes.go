package routes

import (
	"staynest-hostels/internal/adapters/http/handlers"
	"staynest-hostels/internal/adapters/http/middleware"
	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/config"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	walletRequestRepo := repositories.NewWalletRequestRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	locationRepo := repositories.NewLocationRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, paymentRepo, cfg)
	propertyService := services.NewPropertyService(db, propertyRepo)
	walletService := services.NewWalletService(db, paymentRepo, walletRequestRepo, userRepo)
	bookingService := services.NewBookingService(db, bookingRepo, userRepo)
	kycService := services.NewKYCService(kycRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	propertyHandler := handlers.NewPropertyHandler(propertyService, cacheClient)
	walletHandler := handlers.NewWalletHandler(walletService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	kycHandler := handlers.NewKYCHandler(kycService)
	locationHandler := handlers.NewLocationHandler(locationRepo)

	// Auth middleware per surface
	adminAuth := middleware.AdminAuth(cfg)
	vendorAuth := middleware.VendorAuth(cfg)
	studentAuth := middleware.StudentAuth(cfg)

	// Health & root
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login(models.RoleStudent))
	auth.Post("/vendor/login", middleware.AuthRateLimiter(), authHandler.Login(models.RoleVendor))
	auth.Post("/admin/login", middleware.AuthRateLimiter(), authHandler.Login(models.RoleAdmin))
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Public listings
	api.Get("/properties", propertyHandler.Search)
	api.Get("/properties/:id", propertyHandler.Get)

	// Booking dropdown (public read)
	api.Get("/booking/properties/:id/rooms/:roomId/beds", propertyHandler.ListBookingBeds)

	// Locations (public reads, cached)
	locations := api.Group("/locations", middleware.LocationCache())
	locations.Get("/countries", locationHandler.ListCountries)
	locations.Get("/states", locationHandler.ListStates)
	locations.Get("/cities", locationHandler.ListCities)
	locations.Get("/areas", locationHandler.ListAreas)

	// Student portal
	student := api.Group("/student", studentAuth)
	student.Get("/me", authHandler.Me)
	student.Get("/kyc", kycHandler.GetOwn)
	student.Get("/bookings", bookingHandler.ListOwn)
	student.Get("/wallet-requests", walletHandler.ListOwnRequests)

	api.Post("/kyc", studentAuth, kycHandler.Submit)
	api.Get("/wallet", studentAuth, walletHandler.GetWallet)
	api.Post("/wallet-requests", studentAuth, walletHandler.CreateRequest)
	api.Post("/bookings", studentAuth, bookingHandler.Create)

	// Vendor back-office
	vendor := api.Group("/vendor", vendorAuth)
	vendor.Get("/me", authHandler.Me)
	vendor.Get("/properties", propertyHandler.ListByVendor)
	vendor.Post("/properties", propertyHandler.Create)
	vendor.Put("/properties/:id", propertyHandler.Update)
	vendor.Post("/properties/:id/rooms", propertyHandler.AddRoom)

	// Admin back-office
	admin := api.Group("/admin", adminAuth)
	admin.Get("/me", authHandler.Me)
	admin.Post("/staff", authHandler.CreateStaff)
	admin.Post("/payments", walletHandler.CreatePayment)
	admin.Get("/wallet-requests", walletHandler.ListRequests)
	admin.Put("/wallet-requests/:id", walletHandler.ReviewRequest)
	admin.Get("/kyc", kycHandler.List)
	admin.Put("/kyc/:id", kycHandler.Review)
	admin.Get("/bookings", bookingHandler.List)
	admin.Post("/locations/countries", locationHandler.CreateCountry)
	admin.Post("/locations/states", locationHandler.CreateState)
	admin.Post("/locations/cities", locationHandler.CreateCity)
	admin.Post("/locations/areas", locationHandler.CreateArea)

	// Admin inventory mutations
	api.Post("/properties", adminAuth, propertyHandler.Create)
	api.Put("/properties/:id", adminAuth, propertyHandler.Update)
	api.Delete("/properties/:id", adminAuth, propertyHandler.Deactivate)
	api.Post("/properties/:id/rooms", adminAuth, propertyHandler.AddRoom)
	api.Put("/properties/:id/rooms/:roomId/beds/:bedId", adminAuth, propertyHandler.UpdateBed)
}
