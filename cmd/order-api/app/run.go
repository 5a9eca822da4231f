package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"github.com/tn0901/shop-api/configs"
	"github.com/tn0901/shop-api/internal/adapter/catalog"
	httpadapter "github.com/tn0901/shop-api/internal/adapter/http"
	"github.com/tn0901/shop-api/internal/adapter/http/middleware"
	"github.com/tn0901/shop-api/internal/adapter/kafka"
	"github.com/tn0901/shop-api/internal/adapter/repo"
	"github.com/tn0901/shop-api/internal/logging"
	"github.com/tn0901/shop-api/internal/security"
	"github.com/tn0901/shop-api/internal/seed"
	"github.com/tn0901/shop-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init("order-api", cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	logger.Info("order-api starting up")

	// product-api is the stock source of truth; orders only ever read it.
	// Request-scoped lookups forward the caller's token; the seeder runs on
	// a service token of our own.
	tokens := security.NewServiceTokenSource(cfg, "svc-order-api")
	gateway := catalog.NewProductClient(cfg.ProductService.BaseURL, cfg.ProductService.Timeout, tokens)

	// kafka producer is optional: no brokers, no events
	var events usecase.OrderEvents
	var closeProducer func()
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			return nil, nil, err
		}
		ep := kafka.NewOrderEventProducer(producer, cfg.Kafka.TopicEvents)
		events = ep
		closeProducer = func() { _ = ep.Close() }
	}

	orderRepo := repo.NewMySQLOrderRepo(db)
	createUC := usecase.NewCreateOrder(orderRepo, gateway, events)
	listUC := usecase.NewListOrders(orderRepo)

	if cfg.Seed.Orders {
		if err := seed.Orders(context.Background(), createUC, gateway, orderRepo, logger); err != nil {
			logger.Warn("order seeding failed", "error", err)
		}
	}

	h := httpadapter.NewOrderHandler(createUC, listUC)
	th := httpadapter.NewTokenHandler(cfg)
	auth := middleware.NewAuthz(cfg)
	router := httpadapter.NewOrderRouter(h, th, auth)

	cleanup := func() {
		_ = db.Close()
		if closeProducer != nil {
			closeProducer()
		}
	}

	return &App{Router: router}, cleanup, nil
}
