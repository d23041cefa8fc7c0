package sales

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balu-pos/balu-pos/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for sales.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ProductRow is the slice of a product the sale path needs: price for line
// pricing, stock for the reservation check. Read under a row lock.
type ProductRow struct {
	ID    int64
	Name  string
	Price float64
	Stock int
}

// TxRepository exposes the operations available inside a sale transaction.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, productID int64) (ProductRow, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
	RestoreStock(ctx context.Context, productID int64, quantity int) error
	InsertSale(ctx context.Context, total float64, createdAt time.Time) (int64, error)
	InsertSaleLine(ctx context.Context, saleID int64, line SaleLine) error
	GetSaleStatusForUpdate(ctx context.Context, saleID int64) (SaleStatus, error)
	SaleLines(ctx context.Context, saleID int64) ([]SaleLine, error)
	CancelSale(ctx context.Context, saleID int64) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps callback in a read-committed transaction. The product row
// locks taken inside are held until commit or rollback. Read committed is
// load-bearing: a contender queued on GetProductForUpdate must re-read the
// stock the winner committed so the builder can reject it as insufficient.
// At repeatable read the same wait would abort with SQLSTATE 40001 and the
// caller would see a database error instead of a stock rejection.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, pgx.ReadCommitted, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

// GetProductForUpdate locks the product row for the rest of the transaction.
// The check-then-decrement pair stays linearizable per product because every
// committer queues on this lock.
func (r *txRepo) GetProductForUpdate(ctx context.Context, productID int64) (ProductRow, error) {
	var row ProductRow
	err := r.tx.QueryRow(ctx,
		`SELECT id, name, price, stock FROM products WHERE id=$1 FOR UPDATE`,
		productID).Scan(&row.ID, &row.Name, &row.Price, &row.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductRow{}, ErrProductNotFound
		}
		return ProductRow{}, err
	}
	return row, nil
}

func (r *txRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id=$2`, quantity, productID)
	return err
}

func (r *txRepo) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id=$2`, quantity, productID)
	return err
}

func (r *txRepo) InsertSale(ctx context.Context, total float64, createdAt time.Time) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx,
		`INSERT INTO sales (total, status, created_at) VALUES ($1, $2, $3) RETURNING id`,
		total, SaleStatusActive, createdAt).Scan(&id)
	return id, err
}

func (r *txRepo) InsertSaleLine(ctx context.Context, saleID int64, line SaleLine) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO sales_products (sale_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
		saleID, line.ProductID, line.Quantity, line.UnitPrice)
	return err
}

func (r *txRepo) GetSaleStatusForUpdate(ctx context.Context, saleID int64) (SaleStatus, error) {
	var status SaleStatus
	err := r.tx.QueryRow(ctx,
		`SELECT status FROM sales WHERE id=$1 FOR UPDATE`, saleID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrSaleNotFound
		}
		return 0, err
	}
	return status, nil
}

func (r *txRepo) SaleLines(ctx context.Context, saleID int64) ([]SaleLine, error) {
	rows, err := r.tx.Query(ctx,
		`SELECT product_id, quantity, unit_price FROM sales_products WHERE sale_id=$1`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []SaleLine
	for rows.Next() {
		var line SaleLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// CancelSale flips the status unconditionally; re-cancelling is a no-op.
func (r *txRepo) CancelSale(ctx context.Context, saleID int64) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE sales SET status=$1 WHERE id=$2`, SaleStatusCancelled, saleID)
	return err
}
