package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

// Repository is the category persistence surface.
type Repository interface {
	List(ctx context.Context, status *shared.Status) ([]Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByFoldedName(ctx context.Context, folded string, excludeID int64) (bool, error)
	Create(ctx context.Context, name string) (Category, error)
	UpdateName(ctx context.Context, id int64, name string) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the Postgres backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, status *shared.Status) ([]Category, error) {
	query := `SELECT id, name, status FROM categories ORDER BY id`
	args := []interface{}{}
	if status != nil {
		query = `SELECT id, name, status FROM categories WHERE status = $1 ORDER BY id`
		args = append(args, int(*status))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Status); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) ExistsByFoldedName(ctx context.Context, folded string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE lower(name) = $1 AND id <> $2)`,
		folded, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, name string) (Category, error) {
	c := Category{Name: name, Status: shared.StatusActive}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, status) VALUES ($1, $2) RETURNING id`,
		name, int(shared.StatusActive)).Scan(&c.ID)
	if isUniqueViolation(err) {
		return Category{}, ErrDuplicateName
	}
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *repository) UpdateName(ctx context.Context, id int64, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, name, id)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET status = $1 WHERE id = $2`, int(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// The uniqueness check and the index can race, so the constraint error maps
// to the same domain error as the pre-check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
