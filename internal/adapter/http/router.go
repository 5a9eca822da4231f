package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tn0901/shop-api/internal/adapter/http/middleware"
	"github.com/tn0901/shop-api/internal/logging"
)

// NewOrderRouter wires the order-api surface.
func NewOrderRouter(h *OrderHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := newEngine("order-api")

	r.POST("/v1/token", th.IssueToken)

	api := r.Group("/api")
	{
		api.POST("/orders", authz.Require("orders.write"), h.CreateOrder)
		api.GET("/orders/my-orders", authz.Require("orders.read"), h.GetMyOrders)
		api.GET("/orders", authz.Require("orders.admin"), h.GetAllOrders)
	}

	return r
}

// NewProductRouter wires the product-api surface.
func NewProductRouter(h *ProductHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := newEngine("product-api")

	r.POST("/v1/token", th.IssueToken)

	api := r.Group("/api")
	{
		api.POST("/products", authz.Require("products.write"), h.Create)
		api.GET("/products", authz.Require("products.read"), h.GetAll)
		api.GET("/products/:id", authz.Require("products.read"), h.GetByID)
		api.PUT("/products/:id", authz.Require("products.write"), h.Update)
		api.DELETE("/products/:id", authz.Require("products.write"), h.Delete)
	}

	return r
}

func newEngine(component string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(component))
	r.Use(middleware.Logging(logging.New(component)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
