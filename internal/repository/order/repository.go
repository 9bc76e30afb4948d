package order

import (
	"context"

	"linaoptic-api/internal/domain"
)

// FlagsUpdate carries a partial flag update. Nil pointers keep the stored
// value; Progress always replaces the stored map wholesale.
type FlagsUpdate struct {
	IsPaid      *bool
	IsDelivered *bool
	Progress    map[string]int
}

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateLines replaces the line list and the stored total.
	UpdateLines(ctx context.Context, id string, lines []domain.OrderLine, totalCents int64) (*domain.Order, error)
	UpdateFlags(ctx context.Context, id string, in FlagsUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
