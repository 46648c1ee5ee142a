package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/rebalance/pkg/account"
)

func TestCurrentWeights(t *testing.T) {
	tests := []struct {
		name              string
		availableToInvest decimal.Decimal
		holdings          []account.Holding
		expectedWeights   []Weight
	}{
		{
			name:              "cash only",
			availableToInvest: decimal.NewFromFloat(1000.00),
			holdings:          nil,
			expectedWeights: []Weight{
				{ContractCode: "cash", Weight: decimal.NewFromInt(1)},
			},
		},
		{
			name:              "cash and one holding",
			availableToInvest: decimal.NewFromFloat(500.00),
			holdings: []account.Holding{
				{ContractCode: "AAPL", CurrentValue: decimal.NewFromFloat(1500.00)},
			},
			expectedWeights: []Weight{
				{ContractCode: "cash", Weight: decimal.NewFromFloat(0.25)},
				{ContractCode: "AAPL", Weight: decimal.NewFromFloat(0.75)},
			},
		},
		{
			name:              "weights rounded to 4 decimal places",
			availableToInvest: decimal.NewFromFloat(100.00),
			holdings: []account.Holding{
				{ContractCode: "AAPL", CurrentValue: decimal.NewFromFloat(100.00)},
				{ContractCode: "MSFT", CurrentValue: decimal.NewFromFloat(100.00)},
			},
			expectedWeights: []Weight{
				{ContractCode: "cash", Weight: decimal.NewFromFloat(0.3333)},
				{ContractCode: "AAPL", Weight: decimal.NewFromFloat(0.3333)},
				{ContractCode: "MSFT", Weight: decimal.NewFromFloat(0.3333)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights, err := CurrentWeights(tt.availableToInvest, tt.holdings)

			require.NoError(t, err)
			require.Len(t, weights, len(tt.expectedWeights))
			for i, expected := range tt.expectedWeights {
				assert.Equal(t, expected.ContractCode, weights[i].ContractCode)
				assert.True(t, expected.Weight.Equal(weights[i].Weight),
					"weight for %s: expected %s, got %s", expected.ContractCode, expected.Weight, weights[i].Weight)
			}
		})
	}
}

func TestCurrentWeightsCashEntryComesFirst(t *testing.T) {
	weights, err := CurrentWeights(decimal.NewFromInt(100), []account.Holding{
		{ContractCode: "AAPL", CurrentValue: decimal.NewFromInt(900)},
	})

	require.NoError(t, err)
	require.NotEmpty(t, weights)
	assert.Equal(t, CashCode, weights[0].ContractCode)
}

func TestCurrentWeightsSumToOneWithinTolerance(t *testing.T) {
	holdings := []account.Holding{
		{ContractCode: "AAPL", CurrentValue: decimal.NewFromFloat(333.33)},
		{ContractCode: "MSFT", CurrentValue: decimal.NewFromFloat(271.99)},
		{ContractCode: "TSLA", CurrentValue: decimal.NewFromFloat(145.67)},
	}
	weights, err := CurrentWeights(decimal.NewFromFloat(249.01), holdings)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w.Weight)
	}

	// 4-decimal rounding bounds the error at entries * 0.00005
	tolerance := decimal.NewFromFloat(0.00005).Mul(decimal.NewFromInt(int64(len(weights))))
	assert.True(t, sum.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(tolerance),
		"weights sum to %s", sum)
}

func TestCurrentWeightsZeroPortfolioValue(t *testing.T) {
	weights, err := CurrentWeights(decimal.Zero, nil)

	assert.ErrorIs(t, err, ErrZeroPortfolioValue)
	assert.Nil(t, weights)
}
