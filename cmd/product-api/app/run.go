package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/tn0901/shop-api/configs"
	"github.com/tn0901/shop-api/internal/adapter/cache"
	httpadapter "github.com/tn0901/shop-api/internal/adapter/http"
	"github.com/tn0901/shop-api/internal/adapter/http/middleware"
	"github.com/tn0901/shop-api/internal/adapter/repo"
	"github.com/tn0901/shop-api/internal/logging"
	"github.com/tn0901/shop-api/internal/seed"
	"github.com/tn0901/shop-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init("product-api", cfg.App.LogFile)

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

	logger.Info("product-api starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	productRepo := repo.NewMySQLProductRepo(db)
	cached := cache.NewRedisProductCache(rdb, cfg.Cache.TTL, productRepo)
	productsUC := usecase.NewManageProducts(cached)

	if cfg.Seed.Products {
		if err := seed.Products(context.Background(), productRepo, logger); err != nil {
			logger.Warn("product seeding failed", "error", err)
		}
	}

	h := httpadapter.NewProductHandler(productsUC)
	th := httpadapter.NewTokenHandler(cfg)
	auth := middleware.NewAuthz(cfg)
	router := httpadapter.NewProductRouter(h, th, auth)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}
