package monitor

import "github.com/shopspring/decimal"

// Direction classifies a position's move since entry.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// Classify computes the percentage change from entry to current and
// classifies it against the thresholds. Both thresholds are inclusive:
// exactly +3.00% is an up alert, exactly -2.00% a down alert.
func Classify(entry, current, upPct, downPct decimal.Decimal) (decimal.Decimal, Direction) {
	if entry.IsZero() {
		return decimal.Zero, DirectionNone
	}

	change := current.Sub(entry).Div(entry).Mul(decimal.NewFromInt(100))

	switch {
	case change.GreaterThanOrEqual(upPct):
		return change, DirectionUp
	case change.LessThanOrEqual(downPct):
		return change, DirectionDown
	default:
		return change, DirectionNone
	}
}
