package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Holding is a single position held in a brokerage account, snapshotted at
// fetch time. CurrentValue is quantity times the latest price, in the
// currency the account is denominated in.
type Holding struct {
	ContractCode string
	Shares       decimal.Decimal
	CurrentValue decimal.Decimal
}

// FundsSummary holds the cash side of the account
type FundsSummary struct {
	AvailableToInvest decimal.Decimal
}

// Service defines the interface for the brokerage account service
type Service interface {
	// Holdings gets the current holdings for an account
	Holdings(ctx context.Context, accountID string) ([]Holding, error)

	// FundsSummary gets the funds available to invest for an account
	FundsSummary(ctx context.Context, accountID string) (FundsSummary, error)
}
