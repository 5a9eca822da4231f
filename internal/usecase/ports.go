package usecase

import (
	"context"

	domain "github.com/tn0901/shop-api/internal/entity"
)

// ProductInfo is the stock snapshot returned by the product service at
// lookup time. Price and quantity are only as fresh as the call that
// produced them.
type ProductInfo struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
}

// ProductGateway is the remote inventory lookup consumed by order creation.
// Implementations must distinguish a missing product (ErrProductNotFound)
// from a failed lookup (ErrInventoryUnavailable).
type ProductGateway interface {
	GetByID(ctx context.Context, id string) (*ProductInfo, error)
	GetAll(ctx context.Context) ([]ProductInfo, error)
}

// OrderRepo persists the order aggregate. Save commits the order and all of
// its items as one unit; a partially persisted order is a bug.
type OrderRepo interface {
	Save(ctx context.Context, o *domain.Order) error
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// OrderEvents publishes domain events after commit. Best effort: a publish
// failure never un-creates an order.
type OrderEvents interface {
	PublishValidated(ctx context.Context, msg OrderValidatedMsg) error
}
