package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/migrations"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	common.InitLogger(os.Getenv("LOG_LEVEL"), "console")
	defer common.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		common.LogFatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		common.LogFatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		name, err := migrations.Rollback(ctx, db, migrations.FS())
		if errors.Is(err, migrations.ErrNothingToRollback) {
			common.LogInfo("No migrations to rollback")
			return
		}
		if err != nil {
			common.LogFatal("Rollback failed", zap.Error(err))
		}
		common.LogInfo("Rolled back migration", zap.String("name", name))
		return
	}

	applied, err := migrations.Apply(ctx, db, migrations.FS())
	if err != nil {
		common.LogFatal("Migration failed", zap.Error(err))
	}
	if len(applied) == 0 {
		common.LogInfo("Database is up to date")
		return
	}
	for _, name := range applied {
		common.LogInfo("Applied migration", zap.String("name", name))
	}
}
