package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

type ProductHandler struct {
	products *usecase.ManageProducts
}

func NewProductHandler(products *usecase.ManageProducts) *ProductHandler {
	return &ProductHandler{products: products}
}

type productReq struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"min=0"`
}

type productResp struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func toProductResp(p *domain.Product) productResp {
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.products.Create(ctx, usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResp(p))
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.products.Get(ctx, c.Param("id"))
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(p))
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		writeProductError(c, err)
		return
	}
	out := make([]productResp, 0, len(products))
	for i := range products {
		out = append(out, toProductResp(&products[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.products.Update(ctx, c.Param("id"), usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.products.Delete(ctx, c.Param("id")); err != nil {
		writeProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}

func writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, usecase.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
