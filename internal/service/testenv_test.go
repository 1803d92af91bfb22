package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/models"
	"github.com/mkravets/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &repo.GormRepo{DB: db}
}

func registerUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	svc := &AuthService{Repo: r}
	user, err := svc.Register(context.Background(), username, "password")
	require.NoError(t, err)
	return user
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	p := &models.Product{Name: name, Description: name + " description", Price: price}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}
