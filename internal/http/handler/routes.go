package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"pimapi/internal/auth"
	"pimapi/internal/http/middleware"
	"pimapi/internal/service"
)

// Services bundles the use-case layer for route registration.
type Services struct {
	AttributeGroups service.AttributeGroupService
	Families        service.FamilyService
	Products        service.ProductService
	Users           service.UserService
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Login, password
// recovery and bulk product import are reachable without a token; user
// creation and deletion additionally require the admin role.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens auth.TokenIssuer, svcs Services) {
	// Readiness: checks DB connectivity only.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Liveness probe.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	authRequired := middleware.RequireAuth(tokens)
	adminOnly := middleware.RequireRole("admin")

	ah := NewAttributeGroupHandler(svcs.AttributeGroups)
	attributes := app.Group("/attributes", authRequired)
	attributes.Get("/", ah.List)
	attributes.Post("/add/", ah.Create)
	attributes.Patch("/:id/update/", ah.Update)
	attributes.Delete("/:id/delete/", ah.Delete)

	fh := NewFamilyHandler(svcs.Families)
	families := app.Group("/families", authRequired)
	families.Get("/", fh.List)
	families.Post("/add/", fh.Create)
	families.Get("/:id/attributes/", fh.Attributes)
	families.Patch("/:id/update/", fh.Update)
	families.Delete("/:id/delete/", fh.Delete)

	ph := NewProductHandler(svcs.Products)
	products := app.Group("/products")
	products.Get("/", authRequired, ph.List)
	products.Post("/add/", authRequired, ph.Create)
	products.Post("/add/bulk/", ph.CreateBulk)
	products.Patch("/:id/update/", authRequired, ph.Update)
	products.Delete("/:id/delete/", authRequired, ph.Delete)

	uh := NewUserHandler(svcs.Users)
	users := app.Group("/users")
	users.Get("/", authRequired, uh.List)
	users.Post("/login/", uh.Login)
	users.Post("/add/", authRequired, adminOnly, uh.Create)
	users.Patch("/:id/update/", authRequired, uh.Update)
	users.Delete("/:id/delete/", authRequired, adminOnly, uh.Delete)
	users.Post("/forgot/password/", uh.ForgotPassword)
	users.Patch("/reset/password/", uh.ResetPassword)
}
