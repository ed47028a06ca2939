package repos

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems inserts the order header and every line item in one
// transaction and returns the new order id. Nothing is written if any
// insert fails.
func (r *OrderRepo) CreateWithItems(ctx context.Context, o domain.Order, items []domain.OrderItem) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	var orderID int64
	if err := tx.GetContext(ctx, &orderID, tx.Rebind(`
		INSERT INTO orders(user_id, total_amount, payment_method, payment_status, transaction_id, created_at)
		VALUES(?, ?, ?, ?, ?, ?)
		RETURNING id`),
		o.UserID, o.TotalAmount, o.PaymentMethod, o.PaymentStatus, o.TransactionID, o.CreatedAt); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	insertItem := tx.Rebind(`
		INSERT INTO order_items(order_id, product_title, product_price, quantity)
		VALUES(?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItem, orderID, it.ProductTitle, it.ProductPrice, it.Quantity); err != nil {
			return 0, fmt.Errorf("insert order item %q: %w", it.ProductTitle, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// Get loads an order with its items; sql.ErrNoRows if absent.
func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	if err := r.db.GetContext(ctx, &o, r.db.Rebind(`
		SELECT id, user_id, total_amount, payment_method, payment_status, transaction_id, created_at
		FROM orders WHERE id = ?`), id); err != nil {
		return domain.Order{}, err
	}
	if err := r.db.SelectContext(ctx, &o.Items, r.db.Rebind(`
		SELECT order_id, product_title, product_price, quantity
		FROM order_items WHERE order_id = ?
		ORDER BY id`), id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// ListByUser returns the user's order headers, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT id, user_id, total_amount, payment_method, payment_status, transaction_id, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`), userID)
	return out, err
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
