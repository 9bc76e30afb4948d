package product

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

const productColumns = `id::text, title, COALESCE(description, ''), translations, main_category, sub_category,
COALESCE(frame_type, ''), COALESCE(cover_image, ''), COALESCE(brand, ''),
old_price_cents, new_price_cents, colors, stock_quantity, trending, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Translations, &p.MainCategory, &p.SubCategory,
		&p.FrameType, &p.CoverImage, &p.Brand,
		&p.OldPriceCents, &p.NewPriceCents, &p.Colors, &p.StockQuantity, &p.Trending,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (title, description, translations, main_category, sub_category, frame_type,
                      cover_image, brand, old_price_cents, new_price_cents, colors, stock_quantity, trending)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13)
RETURNING id::text, created_at, updated_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.Title, p.Description, p.Translations, p.MainCategory, p.SubCategory, p.FrameType,
		p.CoverImage, p.Brand, p.OldPriceCents, p.NewPriceCents, p.Colors, p.StockQuantity, p.Trending,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create title=%q error=%v", p.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s title=%q stock=%d", res.ID, res.Title, res.StockQuantity)
	return &res, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET title = $2,
    description = NULLIF($3, ''),
    translations = $4,
    main_category = $5,
    sub_category = $6,
    frame_type = NULLIF($7, ''),
    cover_image = NULLIF($8, ''),
    brand = NULLIF($9, ''),
    old_price_cents = $10,
    new_price_cents = $11,
    colors = $12,
    stock_quantity = $13,
    trending = $14,
    updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Description, p.Translations, p.MainCategory, p.SubCategory, p.FrameType,
		p.CoverImage, p.Brand, p.OldPriceCents, p.NewPriceCents, p.Colors, p.StockQuantity, p.Trending,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &res, nil
}

// SaveStock writes the colors document and the aggregate in one row update, so
// two racing ledgers serialize on the product row instead of interleaving.
func (r *postgresRepo) SaveStock(ctx context.Context, p *domain.Product) error {
	const q = `
UPDATE products
SET colors = $2,
    stock_quantity = $3,
    updated_at = now()
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, p.ID, p.Colors, p.StockQuantity)
	if err != nil {
		r.logger.Printf("product repo: save stock id=%s error=%v", p.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}
