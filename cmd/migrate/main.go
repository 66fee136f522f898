package main

import (
	"context"
	"flag"
	"log"
	"time"

	"medqbank/internal/config"
	"medqbank/internal/database"
	"medqbank/internal/logger"

	"go.uber.org/zap"
)

// Usage: migrate [-steps N] up|down|version
func main() {
	steps := flag.Int("steps", 0, "number of migrations to roll back with down (0 = all)")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(ctx, cfg)
	cancel()
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down(*steps)
	case "version":
	default:
		l.Fatal("Unknown command, expected up, down or version", zap.String("command", command))
	}
	if err != nil {
		l.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil {
		l.Fatal("Failed to read schema version", zap.Error(err))
	}
	l.Info("Migration finished",
		zap.String("command", command),
		zap.String("driver", cfg.DB.Driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}
