package alpaca

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/account"
)

// Holdings gets the current positions in the account. Alpaca credentials are
// scoped to a single account, so accountID is not sent on the wire; it is
// accepted for interface parity with multi-account brokerages.
func (c *Client) Holdings(ctx context.Context, accountID string) ([]account.Holding, error) {
	positions, err := c.trading.ListPositions()
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	holdings := make([]account.Holding, 0, len(positions))
	for _, position := range positions {
		value := decimal.Zero
		switch {
		case position.MarketValue != nil:
			value = *position.MarketValue
		case position.CurrentPrice != nil:
			value = position.Qty.Mul(*position.CurrentPrice)
		}
		holdings = append(holdings, account.Holding{
			ContractCode: position.Symbol,
			Shares:       position.Qty,
			CurrentValue: value,
		})
	}
	return holdings, nil
}

// FundsSummary gets the cash available to invest in the account
func (c *Client) FundsSummary(ctx context.Context, accountID string) (account.FundsSummary, error) {
	acct, err := c.trading.GetAccount()
	if err != nil {
		return account.FundsSummary{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account.FundsSummary{AvailableToInvest: acct.Cash}, nil
}
