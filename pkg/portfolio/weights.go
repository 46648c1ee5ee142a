package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/account"
)

// CurrentWeights calculates the allocation of a portfolio as weights in
// decimal form, rounded to 4 decimal places. The cash component of the
// account is reported first under the synthetic CashCode entry, followed by
// one entry per holding. Returns ErrZeroPortfolioValue when the portfolio is
// worth nothing, since no weight is defined in that case.
func CurrentWeights(availableToInvest decimal.Decimal, holdings []account.Holding) ([]Weight, error) {
	value := PortfolioValue(availableToInvest, holdings)
	if value.IsZero() {
		return nil, ErrZeroPortfolioValue
	}

	weights := make([]Weight, 0, len(holdings)+1)
	weights = append(weights, Weight{
		ContractCode: CashCode,
		Weight:       availableToInvest.Div(value).Round(4),
	})
	for _, holding := range holdings {
		weights = append(weights, Weight{
			ContractCode: holding.ContractCode,
			Weight:       holding.CurrentValue.Div(value).Round(4),
		})
	}
	return weights, nil
}
