package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ConnConfig interpreta a DSN e fixa o fuso da sessão como parâmetro de
// conexão, para que toda conexão do pool já nasça com ele
func ConnConfig(dsn, tz string) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if tz == "" {
		return cfg, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid DB_TIMEZONE %q: %w", tz, err)
	}
	cfg.RuntimeParams["timezone"] = tz
	return cfg, nil
}

// OpenConnection abre o pool database/sql sobre o driver pgx
func OpenConnection(dsn, tz string) (*sql.DB, error) {
	cfg, err := ConnConfig(dsn, tz)
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cfg), nil
}
