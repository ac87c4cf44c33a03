package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrBadTransition = errors.New("order status transition not allowed")
)

type Repository interface {
	Place(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CancelAndRestock(ctx context.Context, id string) error
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Place commits the placement atomically: the order row, its item snapshots,
// the per-product stock decrement and the cart wipe all land in one
// transaction. The decrement is conditional on remaining stock, so a
// concurrent placement that emptied the shelf first fails the whole
// transaction with ErrInsufficientStock and nothing is kept.
func (r *PGRepo) Place(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	addr, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, user_id, customer_name, customer_email, phone, address,
                        subtotal, shipping, total, currency, status, payment_status,
                        internal_notes, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
  `, o.ID, o.UserID, o.CustomerName, o.CustomerEmail, o.Phone, addr,
		o.Subtotal, o.Shipping, o.Total, o.Currency, o.Status, o.PaymentStatus,
		o.InternalNotes); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, title_snapshot, price_snapshot, quantity)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, it.ID, o.ID, it.ProductID, it.TitleSnapshot, it.PriceSnapshot, it.Quantity); err != nil {
			return err
		}

		// decrement only while stock still covers the quantity
		tag, err := tx.Exec(ctx, `
      UPDATE products
      SET stock_remaining = stock_remaining - $2,
          sold_count = sold_count + $2,
          updated_at = NOW()
      WHERE id = $1 AND stock_remaining >= $2
    `, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientStock
		}
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM cart_items ci
    USING carts c
    WHERE ci.cart_id = c.id AND c.user_id = $1
  `, o.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	var o Order
	var addr []byte
	if err := r.db.QueryRow(ctx, `
    SELECT id, user_id, customer_name, customer_email, phone, address,
           subtotal, shipping, total, currency, status, payment_status,
           internal_notes, created_at, updated_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.Phone, &addr,
		&o.Subtotal, &o.Shipping, &o.Total, &o.Currency, &o.Status, &o.PaymentStatus,
		&o.InternalNotes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, nil, ErrNotFound
	}
	if err := json.Unmarshal(addr, &o.Address); err != nil {
		return nil, nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *PGRepo) getItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, title_snapshot, price_snapshot, quantity
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.TitleSnapshot, &it.PriceSnapshot, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
    SELECT id, user_id, customer_name, customer_email, phone, address,
           subtotal, shipping, total, currency, status, payment_status,
           internal_notes, created_at, updated_at
    FROM orders WHERE user_id=$1
    ORDER BY created_at DESC LIMIT $2 OFFSET $3
  `, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var addr []byte
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.Phone, &addr,
			&o.Subtotal, &o.Shipping, &o.Total, &o.Currency, &o.Status, &o.PaymentStatus,
			&o.InternalNotes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(addr, &o.Address); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $2, updated_at = NOW()
    WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelAndRestock moves a PENDING order to CANCELLED and gives the stock
// back, all in one transaction. Orders that already left PENDING cannot be
// cancelled here.
func (r *PGRepo) CancelAndRestock(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE orders
    SET status = $2, updated_at = NOW()
    WHERE id = $1 AND status = $3
  `, id, StatusCancelled, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrBadTransition
	}

	items, err := r.getItemsTx(ctx, tx, id)
	if err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      UPDATE products
      SET stock_remaining = stock_remaining + $2,
          sold_count = sold_count - $2,
          updated_at = NOW()
      WHERE id = $1
    `, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGRepo) getItemsTx(ctx context.Context, tx pgx.Tx, orderID string) ([]Item, error) {
	rows, err := tx.Query(ctx, `
    SELECT id, order_id, product_id, title_snapshot, price_snapshot, quantity
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.TitleSnapshot, &it.PriceSnapshot, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET payment_status = $2, updated_at = NOW()
    WHERE id = $1
  `, id, paymentStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
