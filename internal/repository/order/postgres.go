package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linaoptic-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, name, email, phone, address, lines, total_price_cents,
is_paid, is_delivered, product_progress, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.Name, &o.Email, &o.Phone, &o.Address, &o.Products, &o.TotalPriceCents,
		&o.IsPaid, &o.IsDelivered, &o.ProductProgress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.ProductProgress == nil {
		o.ProductProgress = map[string]int{}
	}
	return &o, nil
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (name, email, phone, address, lines, total_price_cents, is_paid, is_delivered, product_progress)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + orderColumns
	progress := o.ProductProgress
	if progress == nil {
		progress = map[string]int{}
	}
	saved, err := scanOrder(r.pool.QueryRow(ctx, q,
		o.Name, o.Email, o.Phone, o.Address, o.Products, o.TotalPriceCents, o.IsPaid, o.IsDelivered, progress,
	))
	if err != nil {
		r.logger.Printf("order repo: create email=%s error=%v", o.Email, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s email=%s lines=%d total=%d",
		saved.ID, saved.Email, len(saved.Products), saved.TotalPriceCents)
	return saved, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE email = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, email)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateLines(ctx context.Context, id string, lines []domain.OrderLine, totalCents int64) (*domain.Order, error) {
	const q = `
UPDATE orders
SET lines = $2,
    total_price_cents = $3,
    updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	if lines == nil {
		lines = []domain.OrderLine{}
	}
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, lines, totalCents))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update lines id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) UpdateFlags(ctx context.Context, id string, in FlagsUpdate) (*domain.Order, error) {
	const q = `
UPDATE orders
SET is_paid = COALESCE($2, is_paid),
    is_delivered = COALESCE($3, is_delivered),
    product_progress = $4,
    updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	progress := in.Progress
	if progress == nil {
		progress = map[string]int{}
	}
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, in.IsPaid, in.IsDelivered, progress))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update flags id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: deleted id=%s", id)
	return nil
}
