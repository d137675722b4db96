package aggregation

import (
	grouperr "groupby/pkg/error"
	"groupby/pkg/primitives"

	"github.com/shopspring/decimal"
)

// Counting counts the records of a group. An empty group counts 0.
func Counting[T any]() Collector[T, int64] {
	return Of(
		func() int64 { return 0 },
		func(n int64, _ T) int64 { return n + 1 },
		identity[int64],
	)
}

// Summing sums a numeric field. An empty group sums to 0.
func Summing[T any, N primitives.Number](field func(T) N) Collector[T, N] {
	return Of(
		func() N { return 0 },
		func(sum N, item T) N { return sum + field(item) },
		identity[N],
	)
}

type meanState struct {
	sum   float64
	count int64
}

// Averaging computes the arithmetic mean of a numeric field as float64.
//
// A group that folds zero records has no average: Finish fails with
// DIVISION_UNDEFINED. This can only happen below Filtering or FlatMapping,
// since every group of the grouping core receives at least one record.
func Averaging[T any, N primitives.Number](field func(T) N) Collector[T, float64] {
	return Of(
		func() meanState { return meanState{} },
		func(s meanState, item T) meanState {
			s.sum += float64(field(item))
			s.count++
			return s
		},
		func(s meanState) (float64, error) {
			if s.count == 0 {
				return 0, grouperr.DivisionUndefined("Averaging")
			}
			return s.sum / float64(s.count), nil
		},
	)
}

// SummingDecimal sums an exact decimal field.
func SummingDecimal[T any](field func(T) decimal.Decimal) Collector[T, decimal.Decimal] {
	return Of(
		func() decimal.Decimal { return decimal.Zero },
		func(sum decimal.Decimal, item T) decimal.Decimal { return sum.Add(field(item)) },
		identity[decimal.Decimal],
	)
}

type decimalMeanState struct {
	sum   decimal.Decimal
	count int64
}

// AveragingDecimal is Averaging with exact decimal arithmetic; the quotient
// is rounded to decimal.DivisionPrecision places.
func AveragingDecimal[T any](field func(T) decimal.Decimal) Collector[T, decimal.Decimal] {
	return Of(
		func() decimalMeanState { return decimalMeanState{sum: decimal.Zero} },
		func(s decimalMeanState, item T) decimalMeanState {
			s.sum = s.sum.Add(field(item))
			s.count++
			return s
		},
		func(s decimalMeanState) (decimal.Decimal, error) {
			if s.count == 0 {
				return decimal.Zero, grouperr.DivisionUndefined("AveragingDecimal")
			}
			return s.sum.Div(decimal.NewFromInt(s.count)), nil
		},
	)
}
