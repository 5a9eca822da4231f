package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tn0901/shop-api/internal/adapter/http/middleware"
	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	list   *usecase.ListOrders
}

func NewOrderHandler(create *usecase.CreateOrder, list *usecase.ListOrders) *OrderHandler {
	return &OrderHandler{create: create, list: list}
}

type createOrderReq struct {
	Items []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

type orderItemResp struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderResp struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
	Items       []orderItemResp `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
}

func toOrderResp(o *domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResp{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return orderResp{
		ID:          o.ID,
		UserID:      o.UserID,
		OrderDate:   o.OrderDate,
		Status:      string(o.Status),
		Items:       items,
		TotalAmount: o.TotalAmount,
	}
}

// CreateOrder: shape validation happens here, before the core sees the
// request. The owner id comes from the verified token, never the body.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	userID := c.GetString(middleware.SubjectKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	in := usecase.CreateOrderInput{UserID: userID}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	order, err := h.create.Execute(ctx, in)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResp(order))
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString(middleware.SubjectKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.list.ByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, ordersResp(orders))
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.list.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, ordersResp(orders))
}

func ordersResp(orders []domain.Order) []orderResp {
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	return out
}

// One error per failed call; the first item to fail decided the reason.
func writeOrderError(c *gin.Context, err error) {
	var stock *usecase.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock", "message": stock.Error()})
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_not_found", "message": err.Error()})
	case errors.Is(err, usecase.ErrInventoryUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory_unavailable", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
