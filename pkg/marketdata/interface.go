package marketdata

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInstrumentNotFound is returned when a contract code cannot be resolved
// to a tradable instrument.
var ErrInstrumentNotFound = errors.New("instrument not found")

// Quote is the latest price for a single instrument
type Quote struct {
	ContractCode string
	CurrentPrice decimal.Decimal
}

// Service is the interface for the market data service
type Service interface {
	// CurrentPrice gets the current price for a contract code
	CurrentPrice(ctx context.Context, contractCode string) (*Quote, error)
}
