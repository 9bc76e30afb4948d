package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"linaoptic-api/internal/domain"
)

// Integration tests run against a migrated database named by TEST_DB_DSN and
// are skipped otherwise.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func sampleProduct() domain.Product {
	p := domain.Product{
		Title:        "Monture Horizon (test)",
		Description:  "Monture optique légère",
		MainCategory: "Femmes",
		SubCategory:  "Optique",
		FrameType:    "Cadre rond",
		CoverImage:   "cover.jpg",
		Brand:        "Lina Optic",
		Translations: domain.Translations{
			FR: domain.Translation{Title: "Monture Horizon", Description: "Monture optique légère"},
			AR: domain.Translation{Title: "إطار هورايزن"},
		},
		OldPriceCents: 89900,
		NewPriceCents: 69900,
		Colors: []domain.Color{
			{ColorName: domain.ColorName{EN: "Black", FR: "Noir", AR: "أسود"}, Images: []string{"noir.jpg"}, Stock: 10},
			{ColorName: domain.ColorName{EN: "Gold", FR: "Doré", AR: "ذهبي"}, Stock: 3},
		},
		Trending: true,
	}
	p.StockQuantity = p.TotalStock()
	return p
}

func TestPostgres_CreateGetRoundtrip(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleProduct())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != created.Title || got.StockQuantity != 13 || len(got.Colors) != 2 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.Colors[0].ColorName.AR != "أسود" {
		t.Fatalf("jsonb colors not preserved: %+v", got.Colors)
	}
	if got.Translations.FR.Title != "Monture Horizon" {
		t.Fatalf("translations not preserved: %+v", got.Translations)
	}
}

func TestPostgres_SaveStock(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleProduct())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	created.Colors[0].Stock = 7
	created.StockQuantity = created.TotalStock()
	if err := repo.SaveStock(ctx, created); err != nil {
		t.Fatalf("SaveStock: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Colors[0].Stock != 7 || got.StockQuantity != 10 {
		t.Fatalf("stock not persisted: %+v", got)
	}
}

func TestPostgres_SaveStockMissingRow(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)

	p := sampleProduct()
	p.ID = "00000000-0000-0000-0000-000000000000"
	err := repo.SaveStock(context.Background(), &p)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_DeleteMissing(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)

	err := repo.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
