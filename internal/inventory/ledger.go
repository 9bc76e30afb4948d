// Package inventory applies signed stock deltas to catalog variants. All
// stock mutations funnel through the Ledger so the per-color buckets and the
// product aggregate never drift apart.
package inventory

import (
	"context"
	"fmt"
	"io"
	"log"

	"linaoptic-api/internal/domain"
)

type productStore interface {
	SaveStock(ctx context.Context, p *domain.Product) error
}

type Ledger struct {
	store  productStore
	logger *log.Logger
}

func New(store productStore, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Ledger{store: store, logger: logger}
}

// ApplyDelta adjusts one color bucket by delta (negative = consumption,
// positive = restoration), recomputes the product aggregate and persists the
// product. A decrement that would overshoot clamps the bucket at zero instead
// of erroring; this is best-effort stock keeping, not a reservation system.
func (l *Ledger) ApplyDelta(ctx context.Context, p *domain.Product, colorIndex, delta int) error {
	if colorIndex < 0 || colorIndex >= len(p.Colors) {
		return fmt.Errorf("inventory: color index %d out of range for product %s", colorIndex, p.ID)
	}

	next := p.Colors[colorIndex].Stock + delta
	if next < 0 {
		l.logger.Printf("inventory: product=%s color=%q delta=%d clamped to zero (had %d)",
			p.ID, p.Colors[colorIndex].ColorName.EN, delta, p.Colors[colorIndex].Stock)
		next = 0
	}
	p.Colors[colorIndex].Stock = next
	p.StockQuantity = p.TotalStock()

	if err := l.store.SaveStock(ctx, p); err != nil {
		return fmt.Errorf("inventory: save stock for product %s: %w", p.ID, err)
	}
	l.logger.Printf("inventory: product=%s color=%q delta=%d stock=%d total=%d",
		p.ID, p.Colors[colorIndex].ColorName.EN, delta, next, p.StockQuantity)
	return nil
}
