package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/config"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/database"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/routes"
	"github.com/PavaniTiago/lcp-network-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	registry := survey.DefaultRegistry()

	store, err := openStore(cfg, registry, log)
	if err != nil {
		log.Fatal("Error setting up storage", zap.Error(err))
	}

	useCases := usecases.New(registry, usecases.Repositories{
		Surveys:     repositories.NewSurveyRepository(store, registry, log),
		Projections: repositories.NewMemberSurveyRepository(store),
		Visibility:  repositories.NewVisibilityRepository(store),
		Viewers:     repositories.NewViewerRepository(store),
	}, cfg.Cache.StatusTTL, utils.LoadLocation(cfg.Database.Timezone), log)

	app := fiber.New(fiber.Config{
		// Desabilitado modo Prefork pois causa instabilidade no container
		Prefork: false,
		// Set reasonable body limit
		BodyLimit:    10 * 1024 * 1024, // 10MB
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	})

	middleware.SetupMiddlewares(app, cfg.HTTP)
	app.Use(middleware.PerformanceLogger(log, cfg.HTTP.MonitoredPaths))
	routes.SetupRoutes(app, handlers.NewHandlers(useCases, log), middleware.Auth(cfg.Supabase.JWTSecret))

	go func() {
		log.Info("Server is running", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

// openStore usa o PostgREST do Supabase quando configurado e o Postgres direto caso contrário
func openStore(cfg *config.Config, registry *survey.Registry, log *zap.Logger) (repositories.Store, error) {
	if cfg.UsePostgrest() {
		log.Info("Using Supabase PostgREST storage", zap.String("url", cfg.Supabase.URL))
		return repository.NewPostgrestStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey), nil
	}

	db, err := database.SetupDatabase(cfg.Database, cfg.Log.Level, registry, log)
	if err != nil {
		return nil, err
	}
	log.Info("Using direct Postgres storage")
	return repository.NewGormStore(db), nil
}
