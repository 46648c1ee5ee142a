package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/account"
)

// PortfolioValue calculates the value of a portfolio as the cash available to
// invest plus the current value of every holding. The result is rounded to
// 2 decimal places, half away from zero. Empty holdings yield
// availableToInvest unchanged (modulo rounding).
func PortfolioValue(availableToInvest decimal.Decimal, holdings []account.Holding) decimal.Decimal {
	value := availableToInvest
	for _, holding := range holdings {
		value = value.Add(holding.CurrentValue)
	}
	return value.Round(2)
}
