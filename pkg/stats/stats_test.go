package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturns(t *testing.T) {
	tests := []struct {
		name            string
		prices          []float64
		expectedReturns []float64
	}{
		{
			name:            "empty series",
			prices:          nil,
			expectedReturns: nil,
		},
		{
			name:            "single price",
			prices:          []float64{100},
			expectedReturns: nil,
		},
		{
			name:            "rising series",
			prices:          []float64{100, 110, 121},
			expectedReturns: []float64{0.1, 0.1},
		},
		{
			name:            "mixed series",
			prices:          []float64{100, 90, 99},
			expectedReturns: []float64{-0.1, 0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			returns := Returns(tt.prices)

			require.Len(t, returns, len(tt.expectedReturns))
			for i, expected := range tt.expectedReturns {
				assert.InDelta(t, expected, returns[i], 1e-12)
			}
		})
	}
}

func TestVolatility(t *testing.T) {
	t.Run("flat series has zero volatility", func(t *testing.T) {
		volatility, err := Volatility([]float64{100, 100, 100, 100})

		require.NoError(t, err)
		assert.Zero(t, volatility)
	})

	t.Run("known series", func(t *testing.T) {
		// returns are 0.1 and -0.1; sample stddev = sqrt(0.02) and n = 2
		volatility, err := Volatility([]float64{100, 110, 99})

		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(0.02)*math.Sqrt(2), volatility, 1e-9)
	})

	t.Run("too few prices", func(t *testing.T) {
		_, err := Volatility([]float64{100, 110})

		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestBeta(t *testing.T) {
	t.Run("market against itself is one", func(t *testing.T) {
		market := []float64{0.01, -0.02, 0.03, 0.015, -0.005}

		beta, err := Beta(market, market)

		require.NoError(t, err)
		assert.InDelta(t, 1.0, beta, 1e-12)
	})

	t.Run("scaled portfolio doubles beta", func(t *testing.T) {
		market := []float64{0.01, -0.02, 0.03, 0.015}
		portfolio := make([]float64, len(market))
		for i, r := range market {
			portfolio[i] = 2 * r
		}

		beta, err := Beta(portfolio, market)

		require.NoError(t, err)
		assert.InDelta(t, 2.0, beta, 1e-12)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Beta([]float64{0.01}, []float64{0.01, 0.02})

		assert.Error(t, err)
	})

	t.Run("too few observations", func(t *testing.T) {
		_, err := Beta([]float64{0.01}, []float64{0.01})

		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("flat market has no beta", func(t *testing.T) {
		_, err := Beta([]float64{0.01, 0.02, 0.03}, []float64{0.01, 0.01, 0.01})

		assert.ErrorIs(t, err, ErrZeroMarketVariance)
	})
}
