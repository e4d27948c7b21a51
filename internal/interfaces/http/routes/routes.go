package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, authMiddleware fiber.Handler) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	groups := middleware.SetupRouteGroups(app, authMiddleware)

	// Surveys routes
	groups.Surveys.Get("/schemas", h.Survey.GetSchemas)
	groups.Surveys.Get("/status", groups.Auth, h.Survey.GetStatus)
	groups.Surveys.Get("/:year", groups.Auth, h.Survey.GetSurvey)
	groups.Surveys.Put("/:year/draft", groups.Auth, h.Survey.SaveDraft)
	groups.Surveys.Post("/:year/submit", groups.Auth, h.Survey.Submit)

	// Analytics routes
	groups.Analytics.Get("/:year", middleware.RequireAdmin(), h.Analytics.GetOverview)
	groups.Analytics.Get("/:year/distribution/:field", h.Analytics.GetDistribution)
	groups.Analytics.Get("/:year/stats/:field", h.Analytics.GetStats)

	// Admin routes
	groups.Admin.Post("/viewers", h.Admin.CreateViewer)
}
