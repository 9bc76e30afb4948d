package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"linaoptic-api/internal/domain"
)

type memRepo struct {
	items map[string]*domain.Product
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[string]*domain.Product)}
}

func (m *memRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.seq++
	p.ID = fmt.Sprintf("prod-%04d", m.seq)
	clone := p
	m.items[p.ID] = &clone
	return &p, nil
}

func (m *memRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := m.items[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	clone := p
	m.items[p.ID] = &clone
	return &p, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func validInput() ProductInput {
	return ProductInput{
		Title:         "Monture Horizon",
		Description:   "Monture optique légère",
		MainCategory:  "Femmes",
		SubCategory:   "Optique",
		FrameType:     "Cadre rond",
		Brand:         "Lina Optic",
		OldPriceCents: 89900,
		NewPriceCents: 69900,
		Colors: []ColorInput{
			{ColorName: domain.ColorName{EN: "Black", FR: "Noir", AR: "أسود"}.Requested(), Images: []string{"a.jpg"}, Stock: 10},
			{ColorName: domain.SingleColor("Doré"), Image: "b.jpg", Stock: 3},
		},
	}
}

func TestCreate_ComputesAggregateStock(t *testing.T) {
	svc := New(newMemRepo(), nil)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.StockQuantity != 13 {
		t.Fatalf("expected aggregate 13, got %d", created.StockQuantity)
	}
	if len(created.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(created.Colors))
	}
}

func TestCreate_NormalizesColorInput(t *testing.T) {
	svc := New(newMemRepo(), nil)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A single-string name stands in for all three renderings.
	second := created.Colors[1]
	if second.ColorName.EN != "Doré" || second.ColorName.FR != "Doré" || second.ColorName.AR != "Doré" {
		t.Fatalf("unexpected renderings %+v", second.ColorName)
	}
	// The legacy single-image field becomes the image list.
	if len(second.Images) != 1 || second.Images[0] != "b.jpg" {
		t.Fatalf("unexpected images %v", second.Images)
	}
}

func TestCreate_PartialObjectFilledFromEN(t *testing.T) {
	svc := New(newMemRepo(), nil)

	in := validInput()
	in.Colors = []ColorInput{{
		ColorName: domain.RequestedColor{Name: &domain.ColorName{EN: "Silver"}},
		Stock:     2,
	}}

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got := created.Colors[0].ColorName
	if got.EN != "Silver" || got.FR != "Silver" || got.AR != "Silver" {
		t.Fatalf("unexpected renderings %+v", got)
	}
}

func TestCreate_NegativeStockClampedToZero(t *testing.T) {
	svc := New(newMemRepo(), nil)

	in := validInput()
	in.Colors[0].Stock = -5

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Colors[0].Stock != 0 {
		t.Fatalf("expected clamp to 0, got %d", created.Colors[0].Stock)
	}
	if created.StockQuantity != 3 {
		t.Fatalf("expected aggregate 3, got %d", created.StockQuantity)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(newMemRepo(), nil)

	cases := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{"missing title", func(in *ProductInput) { in.Title = "  " }},
		{"bad main category", func(in *ProductInput) { in.MainCategory = "Unisexe" }},
		{"bad sub category", func(in *ProductInput) { in.SubCategory = "Accessoires" }},
		{"bad frame type", func(in *ProductInput) { in.FrameType = "Cadre fantaisie" }},
		{"no colors", func(in *ProductInput) { in.Colors = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreate_EmptyFrameTypeAllowed(t *testing.T) {
	svc := New(newMemRepo(), nil)

	in := validInput()
	in.FrameType = ""
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("frame type is optional: %v", err)
	}
}

func TestUpdate_ReplacesProduct(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, nil)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput()
	in.NewPriceCents = 59900
	in.Colors = in.Colors[:1]

	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.NewPriceCents != 59900 || updated.StockQuantity != 10 {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := New(newMemRepo(), nil)
	_, err := svc.Update(context.Background(), "ghost", validInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
