package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/car-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AdminUsers     *handlers.AdminUsersHandler
	Brands         *handlers.BrandsHandler
	AdminBrands    *handlers.AdminBrandsHandler
	Vehicles       *handlers.VehiclesHandler
	AdminVehicles  *handlers.AdminVehiclesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes under /api/v1.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	users := api.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	users.Put("/me", cfg.AuthMiddleware.Handle, cfg.Users.UpdateMe)
	users.Delete("/me", cfg.AuthMiddleware.Handle, cfg.Users.DeleteMe)

	brands := api.Group("/brands")
	brands.Get("/", cfg.Brands.List)
	brands.Get("/:id", cfg.Brands.Get)

	vehicles := api.Group("/vehicles")
	vehicles.Get("/", cfg.Vehicles.List)
	vehicles.Get("/:id", cfg.Vehicles.Get)
	vehicles.Post("/", cfg.AuthMiddleware.Handle, cfg.Vehicles.Create)
	vehicles.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Vehicles.Update)
	vehicles.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Vehicles.Delete)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())

	adminUsers := admin.Group("/users")
	adminUsers.Get("/", cfg.AdminUsers.List)
	adminUsers.Get("/:id", cfg.AdminUsers.Get)
	adminUsers.Patch("/:id/activate", cfg.AdminUsers.Activate)
	adminUsers.Patch("/:id/deactivate", cfg.AdminUsers.Deactivate)
	adminUsers.Patch("/:id/role", cfg.AdminUsers.ChangeRole)

	adminBrands := admin.Group("/brands")
	adminBrands.Post("/", cfg.AdminBrands.Create)
	adminBrands.Put("/:id", cfg.AdminBrands.Update)
	adminBrands.Patch("/:id/activate", cfg.AdminBrands.Activate)
	adminBrands.Patch("/:id/deactivate", cfg.AdminBrands.Deactivate)
	adminBrands.Delete("/:id", cfg.AdminBrands.Delete)

	adminVehicles := admin.Group("/vehicles")
	adminVehicles.Post("/", cfg.AdminVehicles.Create)
	adminVehicles.Get("/", cfg.AdminVehicles.List)
	adminVehicles.Put("/:id", cfg.AdminVehicles.Update)
	adminVehicles.Delete("/:id", cfg.AdminVehicles.Delete)
}
