package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meridianpay/dashboard/internal/guard"
	"github.com/meridianpay/dashboard/internal/middleware"
	"github.com/meridianpay/dashboard/internal/pages"
)

// RegisterPageRoutes wires the public entry page and every guarded page
// prefix. Guarded pages are served immediately; the guard's verdict applies
// asynchronously (see middleware.Guard).
func RegisterPageRoutes(app *fiber.App, guards middleware.GuardDeps) {
	app.Get(guard.PublicEntryRoute, func(c *fiber.Ctx) error {
		// A fresh visit to the entry point resets any pending eviction.
		guards.ClearEviction(c.UserContext(), middleware.SessionID(c))
		return c.JSON(pages.Describe(c.Path()))
	})

	serve := func(c *fiber.Ctx) error {
		return c.JSON(pages.Describe(c.Path()))
	}

	gate := middleware.Guard(guards)
	for _, prefix := range pages.ProtectedPrefixes {
		app.Get(prefix, gate, serve)
		app.Get(prefix+"/*", gate, serve)
	}
}
