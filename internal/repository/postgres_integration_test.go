//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rfrnce/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{&models.Report{}, &models.Product{}, &models.Cart{}, &models.User{}}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresReportFreezeAndUpsert(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	carts := NewCartRepository(db)
	reports := NewReportRepository(db)
	user := seedUser(t, db, "6f1c1c7e-1f3a-4b0a-9a53-1d3f5c3e2a10")
	cart := seedCart(t, db, user.ID, "Postgres")

	for i := 0; i < 3; i++ {
		if err := reports.Upsert(&models.Report{CartID: cart.ID, Content: "<p>x</p>", GeneratedAt: time.Now()}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if _, err := carts.IncrementReportCount(cart.ID, 3); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}
	got, _ := carts.GetByIDAndUser(cart.ID, user.ID)
	if got == nil || got.ReportCount != 3 || !got.IsFrozen {
		t.Fatalf("unexpected cart: %+v", got)
	}
	var rows int64
	db.Model(&models.Report{}).Count(&rows)
	if rows != 1 {
		t.Fatalf("expected one report, got %d", rows)
	}
}

func TestPostgresReviewsColumnIsJSONB(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	var dataType string
	db.Raw("SELECT data_type FROM information_schema.columns WHERE table_name = 'products' AND column_name = 'reviews_json'").Scan(&dataType)
	if dataType != "jsonb" {
		t.Fatalf("expected jsonb column, got %q", dataType)
	}
}
