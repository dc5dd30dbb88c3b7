package testfixtures

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/db"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

// Config returns settings matching the production defaults.
func Config() *config.Config {
	return &config.Config{
		JWTSecret:               "test-secret",
		ServerPort:              "8080",
		LogLevel:                "error",
		RateLimitRequests:       100,
		RateLimitWindow:         time.Minute,
		DefaultTimezone:         "America/Sao_Paulo",
		DefaultOpensAt:          "09:00",
		DefaultClosesAt:         "18:00",
		DefaultSlotStepMinutes:  30,
		FallbackDurationMinutes: 30,
		PhoneRegion:             "BR",
		ShutdownTimeout:         time.Second,
	}
}

// NewDB opens a migrated SQLite database in a temporary file. It is closed
// when the test ends.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "barberpro.db")
	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.Migrate(gdb, Config()); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func Barbershop(tb testing.TB, gdb *gorm.DB, slug string) *models.Barbershop {
	tb.Helper()

	shop := &models.Barbershop{
		Name:             "Shop " + slug,
		Slug:             slug,
		SubscriptionPlan: "free",
		Timezone:         "America/Sao_Paulo",
		OpensAt:          "09:00",
		ClosesAt:         "18:00",
		SlotStepMinutes:  30,
	}
	if err := gdb.Create(shop).Error; err != nil {
		tb.Fatalf("create barbershop: %v", err)
	}
	return shop
}

func Service(tb testing.TB, gdb *gorm.DB, shopID uint, name string, durationMin int, price string) *models.Service {
	tb.Helper()

	svc := &models.Service{
		BarbershopID:    shopID,
		Name:            name,
		Price:           decimal.RequireFromString(price),
		DurationMinutes: durationMin,
	}
	if err := gdb.Create(svc).Error; err != nil {
		tb.Fatalf("create service: %v", err)
	}
	return svc
}

func Client(tb testing.TB, gdb *gorm.DB, shopID uint, name, phone string) *models.Client {
	tb.Helper()

	client := &models.Client{BarbershopID: shopID, Name: name}
	if phone != "" {
		client.Phone = &phone
	}
	if err := gdb.Create(client).Error; err != nil {
		tb.Fatalf("create client: %v", err)
	}
	return client
}
