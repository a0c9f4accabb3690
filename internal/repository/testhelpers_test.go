package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, uuid string) *models.User {
	t.Helper()
	user := &models.User{UUID: uuid}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, name string) *models.Cart {
	t.Helper()
	cart := &models.Cart{UserID: userID, Name: name}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	return cart
}

func seedProduct(t *testing.T, db *gorm.DB, cartID uint, url string) *models.Product {
	t.Helper()
	product := &models.Product{CartID: cartID, URL: url, Status: constants.ProductStatusPending}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
