package database

import (
	"context"
	"fmt"
	"time"

	"medqbank/internal/config"
	"medqbank/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"          // Postgres driver
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
)

func init() {
	// go-ora registers itself as "oracle", which sqlx doesn't know; without
	// this Rebind would leave '?' placeholders in place.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

const pingTimeout = 5 * time.Second

// Connect opens a pool for the configured driver and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("name", cfg.DB.DBName),
	)
	return db, nil
}
