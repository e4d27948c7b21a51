package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/config"
)

func SetupMiddlewares(app *fiber.App, cfg config.HTTPConfig) {
	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))
}

// RouteGroups define os grupos de rotas da API. Surveys mistura rotas
// públicas e autenticadas, então Auth é aplicado rota a rota nele.
type RouteGroups struct {
	Public    fiber.Router
	Surveys   fiber.Router
	Analytics fiber.Router
	Admin     fiber.Router
	Auth      fiber.Handler
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App, authMiddleware fiber.Handler) RouteGroups {
	v1 := app.Group("/api/v1")

	return RouteGroups{
		Public:    v1,
		Surveys:   v1.Group("/surveys"),
		Analytics: v1.Group("/analytics", authMiddleware),
		Admin:     v1.Group("/admin", authMiddleware, RequireAdmin()),
		Auth:      authMiddleware,
	}
}
