// Package stats aggregates the figures shown on the admin dashboard.
package stats

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func New(pool *pgxpool.Pool, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{pool: pool, logger: logger}
}

type MonthlySales struct {
	Month      string `json:"month"`
	Count      int    `json:"count"`
	TotalCents int64  `json:"totalCents"`
}

type Summary struct {
	TotalOrders      int            `json:"totalOrders"`
	TotalSalesCents  int64          `json:"totalSalesCents"`
	TotalProducts    int            `json:"totalProducts"`
	TrendingProducts int            `json:"trendingProducts"`
	MonthlySales     []MonthlySales `json:"monthlySales"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var out Summary

	err := s.pool.QueryRow(ctx, `
SELECT count(*), COALESCE(sum(total_price_cents), 0)
FROM orders
`).Scan(&out.TotalOrders, &out.TotalSalesCents)
	if err != nil {
		return nil, fmt.Errorf("stats: order totals: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
SELECT count(*), count(*) FILTER (WHERE trending)
FROM products
`).Scan(&out.TotalProducts, &out.TrendingProducts)
	if err != nil {
		return nil, fmt.Errorf("stats: product totals: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
SELECT to_char(created_at, 'YYYY-MM') AS month, count(*), COALESCE(sum(total_price_cents), 0)
FROM orders
GROUP BY month
ORDER BY month
`)
	if err != nil {
		return nil, fmt.Errorf("stats: monthly sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Count, &m.TotalCents); err != nil {
			return nil, err
		}
		out.MonthlySales = append(out.MonthlySales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Printf("stats: summary orders=%d products=%d", out.TotalOrders, out.TotalProducts)
	return &out, nil
}
