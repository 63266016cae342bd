package routes

import (
	"hr-selfservice/internal/adapters/http/handlers"
	"hr-selfservice/internal/adapters/http/middleware"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *services.Services, store handlers.Pinger, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, cfg)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	vacationHandler := handlers.NewVacationHandler(svc.Vacations, svc.Reminders)
	requestHandler := handlers.NewServiceRequestHandler(svc.Requests)
	employeeHandler := handlers.NewEmployeeHandler(svc.Gate)
	surveyHandler := handlers.NewSurveyHandler(svc.Surveys)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.NoCacheHeaders())
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupEmployeeRoutes(apiV1.Group("/employees"), employeeHandler, cfg)
	setupVacationRoutes(apiV1.Group("/vacations"), vacationHandler, cfg)
	setupServiceRoutes(apiV1.Group("/services"), requestHandler, cfg)
	setupSurveyRoutes(apiV1.Group("/surveys"), surveyHandler, cfg)
}

// setupAuthRoutes configures admin authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupEmployeeRoutes configures roster routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler, cfg *config.Config) {
	router.Post("/verify", handler.Verify)
	router.Get("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.List)
}

// setupVacationRoutes configures annual vacation plan routes
func setupVacationRoutes(router fiber.Router, handler *handlers.VacationHandler, cfg *config.Config) {
	admin := []fiber.Handler{middleware.AuthMiddleware(cfg), middleware.AdminOnly()}

	// Public routes
	router.Post("/", handler.Submit)
	router.Get("/", handler.List)

	// Fixed paths before /:id
	router.Get("/stats", append(admin, handler.Stats)...)
	router.Get("/reminders/check", middleware.AdminOrCronSecret(cfg), handler.CheckReminders)

	router.Get("/:id", handler.Get)
	router.Put("/:id", append(admin, handler.Update)...)
	router.Delete("/:id", append(admin, handler.Delete)...)
	router.Delete("/", append(admin, handler.DeleteAll)...)
}

// setupServiceRoutes configures service request routes
func setupServiceRoutes(router fiber.Router, handler *handlers.ServiceRequestHandler, cfg *config.Config) {
	admin := []fiber.Handler{middleware.AuthMiddleware(cfg), middleware.AdminOnly()}

	// Public routes
	router.Post("/", handler.Submit)
	router.Get("/", handler.List)

	router.Get("/stats", append(admin, handler.Stats)...)

	router.Get("/:id", handler.Get)
	router.Put("/:id/status", append(admin, handler.UpdateStatus)...)
	router.Delete("/:id", append(admin, handler.Delete)...)
	router.Delete("/", append(admin, handler.DeleteAll)...)
}

// setupSurveyRoutes configures skills survey routes
func setupSurveyRoutes(router fiber.Router, handler *handlers.SurveyHandler, cfg *config.Config) {
	admin := []fiber.Handler{middleware.AuthMiddleware(cfg), middleware.AdminOnly()}

	// Public routes, credentials are checked against the roster
	router.Post("/", handler.Submit)
	router.Put("/:hrCode", handler.Update)

	router.Post("/send-email", append(admin, handler.SendEmail)...)
	router.Get("/", append(admin, handler.List)...)
	router.Get("/:id", append(admin, handler.Get)...)
	router.Delete("/:id", append(admin, handler.Delete)...)
	router.Delete("/", append(admin, handler.DeleteAll)...)
}
