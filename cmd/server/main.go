package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkravets/storefront/internal/config"
	"github.com/mkravets/storefront/internal/httpserver"
	"github.com/mkravets/storefront/internal/logging"
	"github.com/mkravets/storefront/internal/mykafka"
	"github.com/mkravets/storefront/internal/repo"
	"github.com/mkravets/storefront/internal/search"
	"github.com/mkravets/storefront/internal/seed"
	"github.com/mkravets/storefront/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(logging.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(cfg.KAFKA_ADDRESS)
		defer producer.Close()
	}

	var index *search.Index
	if cfg.ES_URL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = &search.Index{ES: es, Name: cfg.ES_INDEX}
	}

	if cfg.SEED_PRODUCTS {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		products, err := seed.Products(seedCtx, db)
		if err != nil {
			cancel()
			log.Fatalf("seed error: %v", err)
		}
		for i := range products {
			if err := index.IndexProduct(seedCtx, &products[i]); err != nil {
				logger.Error("seed index error", "product_id", products[i].ID, "error", err)
			}
		}
		cancel()
		logger.Info("catalog seeded", "products", len(products))
	}

	gormRepo := &repo.GormRepo{DB: db}

	authService := &service.AuthService{Repo: gormRepo}
	catalogService := &service.CatalogService{Repo: gormRepo}
	cartService := &service.CartService{Repo: gormRepo}

	jwtSecret := []byte(cfg.JWT_SECRET)

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authService, Producer: producer, JWTSecret: jwtSecret},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogService, Producer: producer, Index: index},
		CartHandler:    &httpserver.CartHTTP{Svc: cartService, Producer: producer},
		SearchHandler:  &httpserver.SearchHTTP{Index: index},
		JWTSecret:      jwtSecret,
	})

	go func() {
		logger.Info("starting storefront", "port", cfg.SERVER_PORT)
		if err := e.Start(":" + cfg.SERVER_PORT); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
