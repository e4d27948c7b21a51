package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// PerformanceLogger é um middleware que mede o tempo de resposta das rotas monitoradas
func PerformanceLogger(log *zap.Logger, monitoredRoutes []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Path e Method apontam para o buffer da requisição, que o fasthttp reutiliza
		path := utils.CopyString(c.Path())

		shouldMonitor := false
		for _, route := range monitoredRoutes {
			if strings.HasPrefix(path, route) {
				shouldMonitor = true
				break
			}
		}
		if !shouldMonitor {
			return c.Next()
		}

		method := utils.CopyString(c.Method())
		start := time.Now()
		err := c.Next()

		log.Info("request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("query", string(c.Request().URI().QueryString())),
		)
		return err
	}
}
