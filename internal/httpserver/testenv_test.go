package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/models"
	"github.com/mkravets/storefront/internal/mykafka"
	"github.com/mkravets/storefront/internal/repo"
	"github.com/mkravets/storefront/internal/service"
)

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
	A    *AuthHTTP
	C    *CartHTTP
	P    *CatalogHTTP
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := &repo.GormRepo{DB: db}
	producer := &mykafka.Producer{}
	secret := []byte("test-secret")

	return &testEnv{
		E:    echo.New(),
		Repo: r,
		A:    &AuthHTTP{Svc: &service.AuthService{Repo: r}, Producer: producer, JWTSecret: secret},
		C:    &CartHTTP{Svc: &service.CartService{Repo: r}, Producer: producer},
		P:    &CatalogHTTP{Svc: &service.CatalogService{Repo: r}, Producer: producer},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	user, err := env.A.Svc.Register(context.Background(), username, "password")
	require.NoError(t, err)
	return user
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64) *models.Product {
	p := &models.Product{Name: name, Description: name + " description", Price: price}
	require.NoError(t, env.Repo.CreateProduct(context.Background(), p))
	return p
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
