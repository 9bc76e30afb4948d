package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"linaoptic-api/internal/domain"
)

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

func sampleOrder(email string) domain.Order {
	return domain.Order{
		Name:  "Amina K",
		Email: email,
		Phone: "+212600000000",
		Address: domain.Address{
			Street: "12 Rue des Orangers", City: "Casablanca", State: "Casablanca-Settat",
			Country: "Maroc", Zipcode: "20000",
		},
		Products: []domain.OrderLine{{
			ProductID: "prod-a",
			Quantity:  3,
			Color: domain.LineColor{
				ColorName: domain.ColorName{EN: "Black", FR: "Noir", AR: "أسود"},
				Image:     "noir.jpg",
			},
		}},
		TotalPriceCents: 209700,
	}
}

func TestPostgres_CreateGetRoundtrip(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder("roundtrip@example.com"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "roundtrip@example.com" || got.TotalPriceCents != 209700 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if len(got.Products) != 1 || got.Products[0].Color.ColorName.AR != "أسود" {
		t.Fatalf("jsonb lines not preserved: %+v", got.Products)
	}
	if got.ProductProgress == nil || len(got.ProductProgress) != 0 {
		t.Fatalf("expected empty progress map, got %+v", got.ProductProgress)
	}
	if got.IsPaid || got.IsDelivered {
		t.Fatalf("flags must default to false: %+v", got)
	}
}

func TestPostgres_UpdateLines(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder("lines@example.com"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	lines := created.Products
	lines[0].Quantity = 2
	updated, err := repo.UpdateLines(ctx, created.ID, lines, 139800)
	if err != nil {
		t.Fatalf("UpdateLines: %v", err)
	}
	if updated.Products[0].Quantity != 2 || updated.TotalPriceCents != 139800 {
		t.Fatalf("lines not updated: %+v", updated)
	}

	// Dropping every line leaves an order with an empty array, not null.
	emptied, err := repo.UpdateLines(ctx, created.ID, nil, 0)
	if err != nil {
		t.Fatalf("UpdateLines(empty): %v", err)
	}
	if emptied.Products == nil || len(emptied.Products) != 0 {
		t.Fatalf("expected empty line list, got %+v", emptied.Products)
	}
}

func TestPostgres_UpdateFlags(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder("flags@example.com"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	paid := true
	first, err := repo.UpdateFlags(ctx, created.ID, FlagsUpdate{
		IsPaid:   &paid,
		Progress: map[string]int{"prod-a|Noir": 40},
	})
	if err != nil {
		t.Fatalf("UpdateFlags: %v", err)
	}
	if !first.IsPaid || first.IsDelivered || first.ProductProgress["prod-a|Noir"] != 40 {
		t.Fatalf("unexpected flags %+v", first)
	}

	// Omitted flags are retained, the progress map is replaced.
	second, err := repo.UpdateFlags(ctx, created.ID, FlagsUpdate{})
	if err != nil {
		t.Fatalf("UpdateFlags: %v", err)
	}
	if !second.IsPaid {
		t.Fatalf("omitted isPaid must be retained: %+v", second)
	}
	if len(second.ProductProgress) != 0 {
		t.Fatalf("progress must be replaced wholesale: %+v", second.ProductProgress)
	}
}

func TestPostgres_ListByEmail(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgres(pool, nil)
	ctx := context.Background()

	const email = "listbyemail@example.com"
	for i := 0; i < 2; i++ {
		created, err := repo.Create(ctx, sampleOrder(email))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })
	}

	got, err := repo.ListByEmail(ctx, email)
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatalf("expected newest first")
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
