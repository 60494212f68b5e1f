package main

import (
	"context"
	"flag"
	"os"

	"todoapp/internal/db"
	"todoapp/internal/logger"

	"github.com/jackc/pgx/v5/stdlib"
)

func main() {
	apply := flag.Bool("apply", false, "apply pending migrations")
	down := flag.Bool("down", false, "roll back the latest migration")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"), false)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool := db.Connect(dsn)
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	var err error
	switch {
	case *apply && *down:
		logger.Fatal("-apply and -down are mutually exclusive")
	case *apply:
		err = db.MigrateDB(ctx, sqlDB)
	case *down:
		err = db.RollbackDB(ctx, sqlDB)
	}
	if err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	if err := db.StatusDB(ctx, sqlDB); err != nil {
		logger.Fatal("migration status", "error", err)
	}
}
