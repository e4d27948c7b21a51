package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/config"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/database/migrations"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/logger"
)

// SetupDatabase opens the direct Postgres connection and runs the migrations
func SetupDatabase(cfg config.DatabaseConfig, logLevel string, registry *survey.Registry, log *zap.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment")
	}

	conn, err := OpenConnection(cfg.URL, cfg.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		// Skip default transaction for better performance
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.NewGormLogger(log, logger.GormLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := migrations.Migrate(db, registry); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
