package database

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/migrations"
)

// RunMigrations brings the schema up to date. sqlite uses GORM auto-migration,
// postgres applies the SQL files in fsys.
func RunMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS) error {
	if !IsPostgres(db) {
		common.LogInfo("Using GORM auto-migration", zap.String("dialect", db.Dialector.Name()))
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	applied, err := migrations.Apply(ctx, sqlDB, fsys)
	for _, name := range applied {
		common.LogInfo("Applied migration", zap.String("name", name))
	}
	return err
}
