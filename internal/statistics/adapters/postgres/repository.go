package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"audio-tour-service/internal/statistics/core/domain"
	"audio-tour-service/internal/statistics/core/ports"
)

type Row interface {
	Scan(dest ...any) error
}

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryRowContext(ctx context.Context, query string, args ...any) Row
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type StatisticsRepository struct {
	db DB
}

func NewStatisticsRepository(db DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

var _ ports.StatisticsReaderPort = (*StatisticsRepository)(nil)

// Every window is half-open: [$1, $2).
const (
	countActiveUsersSQL = `
SELECT COUNT(*)
FROM users
WHERE is_active = TRUE
  AND date_registration >= $1 AND date_registration < $2`

	countPurchasesSQL = `
SELECT COUNT(*)
FROM user_excursions
WHERE date_added >= $1 AND date_added < $2`

	countListeningsSQL = `
SELECT COUNT(*)
FROM listening
WHERE date_listening >= $1 AND date_listening < $2`

	purchasesByExcursionSQL = `
SELECT
    excursion_id,
    COUNT(*) AS purchases
FROM user_excursions
WHERE date_added >= $1 AND date_added < $2
GROUP BY excursion_id
ORDER BY excursion_id`

	excursionPricesSQL = `
SELECT id, price
FROM excursions
WHERE id = ANY($1)`
)

func (r *StatisticsRepository) CountActiveUsers(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, countActiveUsersSQL, from, to)
}

func (r *StatisticsRepository) CountPurchases(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, countPurchasesSQL, from, to)
}

func (r *StatisticsRepository) CountListenings(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, countListeningsSQL, from, to)
}

func (r *StatisticsRepository) count(ctx context.Context, query string, from, to time.Time) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, from.UTC(), to.UTC()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StatisticsRepository) PurchasesByExcursion(ctx context.Context, from, to time.Time) ([]domain.ExcursionSales, error) {
	rows, err := r.db.QueryContext(ctx, purchasesByExcursionSQL, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.ExcursionSales
	for rows.Next() {
		var s domain.ExcursionSales
		if err := rows.Scan(&s.ExcursionID, &s.Count); err != nil {
			return nil, fmt.Errorf("scan purchases: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *StatisticsRepository) ExcursionPrices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	prices := make(map[int64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	rows, err := r.db.QueryContext(ctx, excursionPricesSQL, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			price decimal.Decimal
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan excursion price: %w", err)
		}
		prices[id] = price
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}
