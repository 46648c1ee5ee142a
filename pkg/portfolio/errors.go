package portfolio

import (
	"errors"
	"fmt"
)

// Stage identifies where in the rebalancing pipeline a failure occurred, so
// callers can log and retry with enough context.
type Stage string

const (
	StageHoldings          Stage = "holdings"
	StageFundsSummary      Stage = "funds-summary"
	StagePrices            Stage = "prices"
	StageDesiredQuantities Stage = "desired-quantities"
	StageOrders            Stage = "orders"
)

// ErrZeroPortfolioValue is returned when weights or desired quantities would
// require dividing by a zero portfolio value.
var ErrZeroPortfolioValue = errors.New("portfolio value is zero")

// UpstreamError wraps a failed fetch from the account or market data service.
// Any such failure aborts the whole computation; partial results are never
// returned.
type UpstreamError struct {
	Stage     Stage
	AccountID string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s fetch failed for account %s: %v", e.Stage, e.AccountID, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MissingPriceError is returned when a contract code needed for valuation or
// order generation has no resolvable price.
type MissingPriceError struct {
	ContractCode string
	Stage        Stage
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no price available for %s during %s", e.ContractCode, e.Stage)
}

// InvalidWeightsError is returned when target weights are rejected before any
// computation begins.
type InvalidWeightsError struct {
	ContractCode string
	Reason       string
}

func (e *InvalidWeightsError) Error() string {
	if e.ContractCode == "" {
		return fmt.Sprintf("invalid target weights: %s", e.Reason)
	}
	return fmt.Sprintf("invalid target weight for %s: %s", e.ContractCode, e.Reason)
}
