package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema and fills shop settings left empty
// by older rows.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	backfill := []struct {
		column string
		value  any
	}{
		{"timezone", cfg.DefaultTimezone},
		{"opens_at", cfg.DefaultOpensAt},
		{"closes_at", cfg.DefaultClosesAt},
	}
	for _, b := range backfill {
		if err := db.Model(&models.Barbershop{}).
			Where(b.column+" IS NULL OR "+b.column+" = ''").
			Update(b.column, b.value).Error; err != nil {
			return fmt.Errorf("backfill %s: %w", b.column, err)
		}
	}

	return db.Model(&models.Barbershop{}).
		Where("slot_step_minutes IS NULL OR slot_step_minutes <= 0").
		Update("slot_step_minutes", cfg.DefaultSlotStepMinutes).Error
}
