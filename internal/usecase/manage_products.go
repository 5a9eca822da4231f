package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/tn0901/shop-api/internal/entity"
)

var ErrInvalidProduct = errors.New("invalid product")

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// ManageProducts is the catalog CRUD surface exposed by product-api.
type ManageProducts struct {
	repo ProductRepo
}

func NewManageProducts(repo ProductRepo) *ManageProducts {
	return &ManageProducts{repo: repo}
}

func (uc *ManageProducts) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price <= 0 || in.Quantity < 0 {
		return nil, ErrInvalidProduct
	}
	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ManageProducts) Get(ctx context.Context, id string) (*domain.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *ManageProducts) List(ctx context.Context) ([]domain.Product, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *ManageProducts) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price <= 0 || in.Quantity < 0 {
		return nil, ErrInvalidProduct
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ManageProducts) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
