package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

// Repository is the product persistence surface.
type Repository interface {
	List(ctx context.Context, categoryStatus *shared.Status) ([]WithCategory, error)
	Get(ctx context.Context, id int64) (WithCategory, error)
	LowStock(ctx context.Context, threshold int) ([]Product, error)
	ExistsInCategory(ctx context.Context, categoryID *int64, folded string, excludeID int64) (bool, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, p Product) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the Postgres backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, name, price, stock, status, category_id, image, description`

// List reads the catalog joined with its categories, so every row carries
// the category name. The optional status filter applies to the category, not
// the product; uncategorized products never appear here.
func (r *repository) List(ctx context.Context, categoryStatus *shared.Status) ([]WithCategory, error) {
	const base = `
		SELECT p.id, p.name, p.price, p.stock, p.status, p.category_id,
		       p.image, p.description, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id`
	query := base + ` ORDER BY p.id`
	args := []interface{}{}
	if categoryStatus != nil {
		query = base + ` WHERE c.status = $1 ORDER BY p.id`
		args = append(args, int(*categoryStatus))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WithCategory
	for rows.Next() {
		var p WithCategory
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status,
			&p.CategoryID, &p.Image, &p.Description, &p.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (WithCategory, error) {
	const query = `
		SELECT p.id, p.name, p.price, p.stock, p.status, p.category_id,
		       p.image, p.description, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	var p WithCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock,
		&p.Status, &p.CategoryID, &p.Image, &p.Description, &p.CategoryName)
	if errors.Is(err, pgx.ErrNoRows) {
		return WithCategory{}, ErrNotFound
	}
	if err != nil {
		return WithCategory{}, err
	}
	return p, nil
}

func (r *repository) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	const query = `SELECT ` + productColumns + `
		FROM products WHERE stock <= $1 AND status = 1 ORDER BY stock, id`
	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *repository) ExistsInCategory(ctx context.Context, categoryID *int64, folded string, excludeID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE category_id IS NOT DISTINCT FROM $1::bigint
			  AND lower(name) = $2 AND id <> $3
		)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, categoryID, folded, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	const query = `
		INSERT INTO products (name, price, stock, status, category_id, image, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query, p.Name, p.Price, p.Stock, int(p.Status),
		p.CategoryID, p.Image, p.Description).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, p Product) error {
	const query = `
		UPDATE products
		SET name = $1, price = $2, stock = $3, status = $4,
		    category_id = $5, image = $6, description = $7
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query, p.Name, p.Price, p.Stock, int(p.Status),
		p.CategoryID, p.Image, p.Description, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET status = $1 WHERE id = $2`, int(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status,
			&p.CategoryID, &p.Image, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
