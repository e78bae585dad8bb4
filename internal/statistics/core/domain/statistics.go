package domain

import "github.com/shopspring/decimal"

type Kind string

const (
	KindUsers      Kind = "user"
	KindExcursions Kind = "excursion"
	KindListening  Kind = "listening"
	KindSales      Kind = "sales"
)

func (k Kind) Valid() bool {
	switch k {
	case KindUsers, KindExcursions, KindListening, KindSales:
		return true
	}
	return false
}

// Statistics is the aggregated result: Values[i] belongs to Segments[i], so
// bucket numbers are i+1.
type Statistics struct {
	Kind        Kind
	Granularity Granularity
	Period      DateRange
	Segments    Segments
	Values      []float64
}

// ExcursionSales is the purchase count of one excursion inside a window.
type ExcursionSales struct {
	ExcursionID int64
	Count       int64
}

// SalesTotal sums price*count over the grouped purchases. Excursions without a
// known price contribute nothing.
func SalesTotal(sales []ExcursionSales, prices map[int64]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		price, ok := prices[s.ExcursionID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(s.Count)))
	}
	return total
}
