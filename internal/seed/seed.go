package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"linaoptic-api/internal/domain"
)

type productSeed struct {
	Title         string
	Description   string
	MainCategory  string
	SubCategory   string
	FrameType     string
	Brand         string
	OldPriceCents int64
	NewPriceCents int64
	Trending      bool
	Colors        []domain.Color
}

// Apply inserts basic seed data for manual testing. It is idempotent: a
// product is only inserted when no product with the same title exists.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Title:         "Monture Horizon",
			Description:   "Monture optique légère en acétate",
			MainCategory:  "Femmes",
			SubCategory:   "Optique",
			FrameType:     "Cadre rond",
			Brand:         "Lina Optic",
			OldPriceCents: 89900,
			NewPriceCents: 69900,
			Trending:      true,
			Colors: []domain.Color{
				{ColorName: domain.ColorName{EN: "Black", FR: "Noir", AR: "أسود"}, Stock: 10},
				{ColorName: domain.ColorName{EN: "Tortoise", FR: "Écaille", AR: "صدفي"}, Stock: 4},
			},
		},
		{
			Title:         "Solaire Atlas",
			Description:   "Lunettes de soleil polarisées",
			MainCategory:  "Hommes",
			SubCategory:   "Solaire",
			FrameType:     "Cadre aviateur",
			Brand:         "Lina Optic",
			OldPriceCents: 119900,
			NewPriceCents: 99900,
			Colors: []domain.Color{
				{ColorName: domain.ColorName{EN: "Gold", FR: "Doré", AR: "ذهبي"}, Stock: 6},
			},
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Title, err)
		}
	}
	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	total := 0
	for _, c := range p.Colors {
		total += c.Stock
	}
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO products (title, description, main_category, sub_category, frame_type, brand,
                      old_price_cents, new_price_cents, colors, stock_quantity, trending)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11
WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = $1)
`
	_, err = pool.Exec(ctx, q,
		p.Title, p.Description, p.MainCategory, p.SubCategory, p.FrameType, p.Brand,
		p.OldPriceCents, p.NewPriceCents, colors, total, p.Trending,
	)
	return err
}
