package portfolio

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersFromDeltas(t *testing.T) {
	tests := []struct {
		name           string
		deltas         map[string]decimal.Decimal
		prices         map[string]decimal.Decimal
		expectedOrders []Order
	}{
		{
			name:           "no deltas",
			deltas:         map[string]decimal.Decimal{},
			prices:         map[string]decimal.Decimal{},
			expectedOrders: []Order{},
		},
		{
			name: "positive delta becomes a buy",
			deltas: map[string]decimal.Decimal{
				"MSFT": decimal.NewFromInt(10),
			},
			prices: map[string]decimal.Decimal{
				"MSFT": decimal.NewFromInt(100),
			},
			expectedOrders: []Order{
				{ContractCode: "MSFT", Side: SideBuy, Amount: decimal.NewFromInt(10), EstimatedOrderValue: decimal.NewFromInt(1000)},
			},
		},
		{
			name: "negative delta becomes a sell",
			deltas: map[string]decimal.Decimal{
				"AAPL": decimal.NewFromFloat(-3.3333),
			},
			prices: map[string]decimal.Decimal{
				"AAPL": decimal.NewFromInt(150),
			},
			expectedOrders: []Order{
				{ContractCode: "AAPL", Side: SideSell, Amount: decimal.NewFromFloat(3.333), EstimatedOrderValue: decimal.NewFromInt(500)},
			},
		},
		{
			name: "zero delta emits no order",
			deltas: map[string]decimal.Decimal{
				"AAPL": decimal.Zero,
				"MSFT": decimal.NewFromInt(1),
			},
			prices: map[string]decimal.Decimal{
				"AAPL": decimal.NewFromInt(150),
				"MSFT": decimal.NewFromInt(100),
			},
			expectedOrders: []Order{
				{ContractCode: "MSFT", Side: SideBuy, Amount: decimal.NewFromInt(1), EstimatedOrderValue: decimal.NewFromInt(100)},
			},
		},
		{
			name: "amount rounded to 3 and value to 2 decimal places",
			deltas: map[string]decimal.Decimal{
				"TSLA": decimal.NewFromFloat(1.23456),
			},
			prices: map[string]decimal.Decimal{
				"TSLA": decimal.NewFromFloat(199.99),
			},
			expectedOrders: []Order{
				// 1.23456 * 199.99 = 246.8996544
				{ContractCode: "TSLA", Side: SideBuy, Amount: decimal.NewFromFloat(1.235), EstimatedOrderValue: decimal.NewFromFloat(246.9)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := OrdersFromDeltas(tt.deltas, tt.prices)

			require.NoError(t, err)
			require.Len(t, orders, len(tt.expectedOrders))
			for i, expected := range tt.expectedOrders {
				assert.Equal(t, expected.ContractCode, orders[i].ContractCode)
				assert.Equal(t, expected.Side, orders[i].Side)
				assert.True(t, expected.Amount.Equal(orders[i].Amount),
					"amount for %s: expected %s, got %s", expected.ContractCode, expected.Amount, orders[i].Amount)
				assert.True(t, expected.EstimatedOrderValue.Equal(orders[i].EstimatedOrderValue),
					"value for %s: expected %s, got %s", expected.ContractCode, expected.EstimatedOrderValue, orders[i].EstimatedOrderValue)
			}
		})
	}
}

func TestOrdersFromDeltasMissingPrice(t *testing.T) {
	deltas := map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(1),
	}

	orders, err := OrdersFromDeltas(deltas, map[string]decimal.Decimal{})

	require.Error(t, err)
	var missingPrice *MissingPriceError
	require.ErrorAs(t, err, &missingPrice)
	assert.Equal(t, "AAPL", missingPrice.ContractCode)
	assert.Equal(t, StageOrders, missingPrice.Stage)
	assert.Nil(t, orders)
}

func TestOrdersFromDeltasSortedByContractCode(t *testing.T) {
	deltas := map[string]decimal.Decimal{
		"TSLA": decimal.NewFromInt(1),
		"AAPL": decimal.NewFromInt(-2),
		"MSFT": decimal.NewFromInt(3),
		"NVDA": decimal.NewFromInt(-4),
	}
	prices := map[string]decimal.Decimal{
		"TSLA": decimal.NewFromInt(200),
		"AAPL": decimal.NewFromInt(150),
		"MSFT": decimal.NewFromInt(100),
		"NVDA": decimal.NewFromInt(400),
	}

	orders, err := OrdersFromDeltas(deltas, prices)

	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.True(t, sort.SliceIsSorted(orders, func(i, j int) bool {
		return orders[i].ContractCode < orders[j].ContractCode
	}))
}

func TestOrdersFromDeltasNeverEmitsZeroAmount(t *testing.T) {
	// 0.0001 and -0.0004 are representable at the 4dp delta precision but
	// round to an amount of zero at 3dp, so they must not produce orders.
	deltas := map[string]decimal.Decimal{
		"AAPL": decimal.NewFromFloat(0.001),
		"MSFT": decimal.Zero,
		"TSLA": decimal.NewFromFloat(-0.001),
		"NVDA": decimal.NewFromFloat(0.0001),
		"AMZN": decimal.NewFromFloat(-0.0004),
	}
	prices := map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(150),
		"MSFT": decimal.NewFromInt(100),
		"TSLA": decimal.NewFromInt(200),
		"NVDA": decimal.NewFromInt(400),
		"AMZN": decimal.NewFromInt(180),
	}

	orders, err := OrdersFromDeltas(deltas, prices)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.False(t, order.Amount.IsZero(), "order for %s has zero amount", order.ContractCode)
	}
}
