package usecase

import (
	"context"

	domain "github.com/tn0901/shop-api/internal/entity"
)

// ListOrders covers the read paths used by the request layer; order
// creation never goes through here.
type ListOrders struct {
	repo OrderRepo
}

func NewListOrders(repo OrderRepo) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) ByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return uc.repo.FindByUser(ctx, userID)
}

func (uc *ListOrders) All(ctx context.Context) ([]domain.Order, error) {
	return uc.repo.FindAll(ctx)
}
