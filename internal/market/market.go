package market

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceProvider is an Interface.
// Interfaces define *behavior*. Any struct that implements these methods
// satisfies the interface, which lets us swap the live Yahoo Finance
// provider for a mock in tests without changing the callers.
type PriceProvider interface {
	// LatestPrice returns the most recent traded price for a ticker.
	// It errors when the provider has no data for the symbol (delisted,
	// wrong symbol, market fully closed with no recent bar) or the call
	// fails. Batch callers should skip the symbol; interactive callers
	// should report the failure to the user.
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
