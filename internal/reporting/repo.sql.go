package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the reporting aggregates against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DayTotals returns the sum and count of active sales in [from, to).
func (r *Repository) DayTotals(ctx context.Context, from, to time.Time) (float64, int64, error) {
	const query = `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2 AND status = 1`
	var total float64
	var count int64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total, &count); err != nil {
		return 0, 0, err
	}
	return total, count, nil
}

// DayMostSold returns the name of the product with the highest quantity
// across active sales in [from, to), or "" when the day is empty.
func (r *Repository) DayMostSold(ctx context.Context, from, to time.Time) (string, error) {
	const query = `
		SELECT p.name
		FROM sales_products sp
		JOIN products p ON p.id = sp.product_id
		JOIN sales s ON s.id = sp.sale_id
		WHERE s.created_at >= $1 AND s.created_at < $2 AND s.status = 1
		GROUP BY p.id, p.name
		ORDER BY SUM(sp.quantity) DESC
		LIMIT 1`
	var name string
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// DayCancelledCount counts cancelled sales in [from, to).
func (r *Repository) DayCancelledCount(ctx context.Context, from, to time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2 AND status = 0`
	var count int64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HistoryRow is one flat sale/line join row; the service groups them by sale.
type HistoryRow struct {
	SaleID    int64
	CreatedAt time.Time
	Status    int
	Total     float64
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// HistoryRows returns every sale line joined with its header and current
// product data for sales created in [from, to), regardless of sale status.
func (r *Repository) HistoryRows(ctx context.Context, from, to time.Time) ([]HistoryRow, error) {
	const query = `
		SELECT s.id, s.created_at, s.status, s.total,
		       p.id, p.name, p.price, sp.quantity
		FROM sales s
		JOIN sales_products sp ON sp.sale_id = s.id
		JOIN products p ON p.id = sp.product_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.id, p.id`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var row HistoryRow
		if err := rows.Scan(&row.SaleID, &row.CreatedAt, &row.Status, &row.Total,
			&row.ProductID, &row.Name, &row.Price, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopSoldProducts ranks products by cumulative quantity across active sales,
// optionally restricted to one category.
func (r *Repository) TopSoldProducts(ctx context.Context, categoryID *int64) ([]TopProduct, error) {
	const query = `
		SELECT p.name, c.name, SUM(sp.quantity)
		FROM sales_products sp
		JOIN products p ON p.id = sp.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN sales s ON s.id = sp.sale_id
		WHERE s.status = 1 AND ($1::bigint IS NULL OR c.id = $1)
		GROUP BY p.name, c.name
		ORDER BY SUM(sp.quantity) DESC
		LIMIT 10`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ProductName, &p.CategoryName, &p.TotalQuantitySold); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CategoryExists reports whether the category id is known.
func (r *Repository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
