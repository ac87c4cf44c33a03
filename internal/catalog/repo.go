// Package catalog provides the repository interface and PostgreSQL
// implementation for products and categories.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Query struct {
	Category  string // category slug
	Condition string // NEW | REFURBISHED
	MinPrice  int64
	MaxPrice  int64
	Sort      string // newest | price_asc | price_desc
	Limit     int
	Offset    int
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Trending(ctx context.Context, limit int) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CategoriesBySlugs(ctx context.Context, slugs []string) ([]Category, error)
	Create(ctx context.Context, p *Product, categoryIDs []string) error
	Update(ctx context.Context, p *Product) error
	SetStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productColumns = `
	id, slug, title, brand, model, description, condition, status,
	price_amount, sale_price_amount, sale_start, sale_end,
	stock_remaining, sold_count, warranty_months, return_policy_days,
	created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Brand, &p.Model, &p.Description,
		&p.Condition, &p.Status, &p.PriceAmount, &p.SalePriceAmount,
		&p.SaleStart, &p.SaleEnd, &p.StockRemaining, &p.SoldCount,
		&p.WarrantyMonths, &p.ReturnPolicyDays, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id=$1
	`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE slug=$1 AND status=$2
	`, slug, StatusActive))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	orderBy := `created_at DESC`
	switch q.Sort {
	case "price_asc":
		orderBy = `price_amount ASC`
	case "price_desc":
		orderBy = `price_amount DESC`
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.status = $1
		  AND ($2 = '' OR p.condition = $2)
		  AND ($3 = '' OR EXISTS (
		        SELECT 1 FROM product_categories pc
		        JOIN categories c ON c.id = pc.category_id
		        WHERE pc.product_id = p.id AND c.slug = $3))
		  AND ($4::bigint <= 0 OR p.price_amount >= $4)
		  AND ($5::bigint <= 0 OR p.price_amount <= $5)
		ORDER BY `+orderBy+`
		LIMIT $6 OFFSET $7
	`, StatusActive, q.Condition, q.Category, q.MinPrice, q.MaxPrice, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PGRepo) Trending(ctx context.Context, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 20 {
		limit = 4
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE status = $1
		ORDER BY sold_count DESC, created_at DESC
		LIMIT $2
	`, StatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, slug, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

func (r *PGRepo) CategoriesBySlugs(ctx context.Context, slugs []string) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, slug, name FROM categories WHERE slug = ANY($1) ORDER BY name
	`, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows pgx.Rows) ([]Category, error) {
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, p *Product, categoryIDs []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO products (id, slug, title, brand, model, description, condition, status,
		                      price_amount, sale_price_amount, sale_start, sale_end,
		                      stock_remaining, sold_count, warranty_months, return_policy_days,
		                      created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,0,$14,$15,NOW(),NOW())
	`, p.ID, p.Slug, p.Title, p.Brand, p.Model, p.Description, p.Condition, p.Status,
		p.PriceAmount, p.SalePriceAmount, p.SaleStart, p.SaleEnd,
		p.StockRemaining, p.WarrantyMonths, p.ReturnPolicyDays); err != nil {
		return err
	}

	for _, cid := range categoryIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_categories (product_id, category_id) VALUES ($1,$2)
		`, p.ID, cid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET title = $2, brand = $3, model = $4, description = $5,
		    condition = $6, status = $7, price_amount = $8, sale_price_amount = $9,
		    sale_start = $10, sale_end = $11, stock_remaining = $12,
		    warranty_months = $13, return_policy_days = $14, updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Title, p.Brand, p.Model, p.Description, p.Condition, p.Status,
		p.PriceAmount, p.SalePriceAmount, p.SaleStart, p.SaleEnd, p.StockRemaining,
		p.WarrantyMonths, p.ReturnPolicyDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
