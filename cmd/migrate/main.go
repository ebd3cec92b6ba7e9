package main

import (
	"flag"
	"log/slog"
	"os"

	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/storage"
	"moviecatalog/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the sql migrations")
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	db, err := postgres.NewConnection(storage.PostgresOptions(cfg))
	if err != nil {
		log.Error("cannot connect to db", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("cannot get db instance", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	direction, limit := migrate.Up, 0
	if down {
		direction, limit = migrate.Down, 1
	}

	total, err := migrate.ExecMax(sqlDB, "postgres", migrations, direction, limit)
	if err != nil {
		log.Error("cannot execute migration", "error", err)
		os.Exit(1)
	}

	log.Info("applied migrations", "total", total, "down", down)
}
