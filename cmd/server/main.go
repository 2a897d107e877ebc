package main

import (
	"log"
	"strings"
	"time"

	"fleet-backend/internal/accounts"
	"fleet-backend/internal/audit"
	"fleet-backend/internal/auth"
	"fleet-backend/internal/compliance"
	"fleet-backend/internal/config"
	"fleet-backend/internal/dashboard"
	"fleet-backend/internal/database"
	"fleet-backend/internal/document"
	"fleet-backend/internal/fine"
	"fleet-backend/internal/fleet"
	"fleet-backend/internal/inventory"
	"fleet-backend/internal/maintenance"
	"fleet-backend/internal/metrics"
	"fleet-backend/internal/models"
	"fleet-backend/internal/partner"
	"fleet-backend/internal/staff"
	"fleet-backend/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	document.Configure(cfg.DocumentPath, cfg.MaxUploadBytes())

	app := fiber.New(fiber.Config{
		// multipart overhead on top of the largest allowed document
		BodyLimit: int(cfg.MaxUploadBytes()) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"message": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}), auth.LoginHandler(cfg.JWTSecret))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))

	adminOnly := auth.RequireRole(models.RoleAdmin)
	bookkeeping := auth.RequireRole(models.RoleAdmin, models.RoleAccountant)

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(adminOnly)
	adminRoutes.Get("/users", auth.ListUsersHandler())
	adminRoutes.Post("/users", auth.CreateUserHandler())

	dashboard.Register(protected)

	staff.Register(protected)
	fleet.Register(protected)
	partner.Register(protected)
	maintenance.Register(protected)
	trip.Register(protected)
	fine.Register(protected)
	compliance.Register(protected)
	inventory.Register(protected)
	accounts.Register(protected, bookkeeping)

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", adminOnly, audit.UndoAuditLogHandler())

	// Documents hang off any registered owner, so these go last.
	document.Mount(protected)

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
