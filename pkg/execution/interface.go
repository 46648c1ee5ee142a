package execution

import (
	"context"

	"github.com/quantfold/rebalance/pkg/portfolio"
	"github.com/shopspring/decimal"
)

// Service defines the interface for the order execution service. It consumes
// the order lists produced by the portfolio engine; the engine itself never
// places orders.
type Service interface {
	// PlaceOrder places a single buy or sell order
	PlaceOrder(ctx context.Context, order portfolio.Order) error

	// PlaceStopLossOrder places a stop-loss order covering the full position
	// held in contractCode
	PlaceStopLossOrder(ctx context.Context, contractCode string, stopPrice decimal.Decimal) error
}
