package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id,name,description,price,quantity,created_at,updated_at)
VALUES (?,?,?,?,?,NOW(),NOW())
`, p.ID, p.Name, p.Description, p.Price, p.Quantity)
	return err
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,description,price,quantity FROM products WHERE id=?`, id)
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,description,price,quantity FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET name=?, description=?, price=?, quantity=?, updated_at=NOW()
WHERE id=?`, p.Name, p.Description, p.Price, p.Quantity, p.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrProductMissing
	}
	return nil
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrProductMissing
	}
	return nil
}

func (r *MySQLProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
