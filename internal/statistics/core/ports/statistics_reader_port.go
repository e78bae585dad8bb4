package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"audio-tour-service/internal/statistics/core/domain"
)

// StatisticsReaderPort answers the per-window questions the aggregator asks.
// Every window is [from, to). Month buckets end on an inclusive last
// microsecond; the aggregator passes to = End+1µs for them, so the final
// microsecond of a month is counted.
type StatisticsReaderPort interface {
	CountActiveUsers(ctx context.Context, from, to time.Time) (int64, error)
	CountPurchases(ctx context.Context, from, to time.Time) (int64, error)
	CountListenings(ctx context.Context, from, to time.Time) (int64, error)

	// PurchasesByExcursion groups purchases made in the window by excursion.
	PurchasesByExcursion(ctx context.Context, from, to time.Time) ([]domain.ExcursionSales, error)
	// ExcursionPrices returns the price of every known excursion in ids.
	ExcursionPrices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}
