package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position represents a single recorded purchase.
//
// Positions are append-only: the same symbol may appear several times, each
// entry being a distinct lot with its own entry price.
type Position struct {
	Symbol     string          `json:"symbol"`      // NSE ticker, uppercase, optional exchange suffix
	EntryPrice decimal.Decimal `json:"entry_price"` // price at the moment of recording
	Timestamp  string          `json:"timestamp"`   // RFC3339 UTC
}

// NewPosition builds a Position stamped with the current UTC time.
func NewPosition(symbol string, price decimal.Decimal) Position {
	return Position{
		Symbol:     symbol,
		EntryPrice: price,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}
