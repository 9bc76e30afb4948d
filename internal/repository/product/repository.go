package product

import (
	"context"

	"linaoptic-api/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	// SaveStock persists only the colors document and the stock aggregate.
	SaveStock(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
