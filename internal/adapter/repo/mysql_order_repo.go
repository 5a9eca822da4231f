package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Save commits the order row and every item row in one transaction. Any
// failure rolls the whole thing back; an order without its items never hits
// the table.
func (r *MySQLOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,total_amount,order_date,created_at,updated_at)
VALUES (?,?,?,?,?,NOW(),NOW())
`, o.ID, o.UserID, string(o.Status), o.TotalAmount, o.OrderDate)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	// seq keeps the caller-supplied item order stable across reads.
	for seq, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (id,order_id,product_id,quantity,price,seq)
VALUES (?,?,?,?,?,?)
`, it.ID, o.ID, it.ProductID, it.Quantity, it.Price, seq)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepo) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.query(ctx, `
SELECT id,user_id,status,total_amount,order_date
FROM orders WHERE user_id=? ORDER BY order_date DESC`, userID)
}

func (r *MySQLOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `
SELECT id,user_id,status,total_amount,order_date
FROM orders ORDER BY order_date DESC`)
}

func (r *MySQLOrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *MySQLOrderRepo) query(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[string]int{}
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, err
		}
		o.Status = domain.Status(status)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	if err := r.attachItems(ctx, orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MySQLOrderRepo) attachItems(ctx context.Context, orders []domain.Order, index map[string]int) error {
	ids := make([]any, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx, `
SELECT id,order_id,product_id,quantity,price
FROM order_items WHERE order_id IN (`+placeholders+`) ORDER BY order_id, seq`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		var orderID string
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
