package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"audio-tour-service/internal/statistics/core/domain"
)

func TestSalesTotal(t *testing.T) {
	prices := map[int64]decimal.Decimal{
		1: decimal.RequireFromString("100.5"),
		2: decimal.RequireFromString("0.1"),
	}

	total := domain.SalesTotal([]domain.ExcursionSales{{ExcursionID: 1, Count: 2}}, prices)
	assert.True(t, total.Equal(decimal.RequireFromString("201.0")), total.String())
	assert.Equal(t, 201.0, total.InexactFloat64())

	total = domain.SalesTotal([]domain.ExcursionSales{
		{ExcursionID: 2, Count: 3},
		{ExcursionID: 1, Count: 1},
		{ExcursionID: 99, Count: 7},
	}, prices)
	assert.Equal(t, "100.8", total.String())

	assert.True(t, domain.SalesTotal(nil, prices).IsZero())
}

func TestKind_Valid(t *testing.T) {
	for _, k := range []domain.Kind{domain.KindUsers, domain.KindExcursions, domain.KindListening, domain.KindSales} {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, domain.Kind("objects").Valid())
}
