package engine

import "github.com/shopspring/decimal"

// Direction classifies the balance movement since last period.
type Direction int

const (
	TrendDown Direction = iota
	TrendSame
	TrendUp
)

// Trend describes how the total balance moved between periods. Delta is the
// absolute difference.
type Trend struct {
	Direction Direction
	Delta     decimal.Decimal
}

// ComputeTrend compares the current total balance against last period's.
// The comparison is exact decimal equality, not approximate.
func ComputeTrend(current, last decimal.Decimal) Trend {
	switch current.Cmp(last) {
	case -1:
		return Trend{Direction: TrendDown, Delta: last.Sub(current)}
	case 0:
		return Trend{Direction: TrendSame, Delta: decimal.Zero}
	default:
		return Trend{Direction: TrendUp, Delta: current.Sub(last)}
	}
}
