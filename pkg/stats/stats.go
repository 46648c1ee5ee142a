// Package stats provides return-series statistics for portfolio analysis.
// Variance and covariance are sample statistics (n-1 normalization).
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned when a series is too short to compute
	// a meaningful statistic.
	ErrInsufficientData = errors.New("insufficient data points")

	// ErrZeroMarketVariance is returned when beta is undefined because the
	// market series does not move.
	ErrZeroMarketVariance = errors.New("market returns have zero variance")
)

// Returns converts a price series into simple period returns. A series of n
// prices yields n-1 returns.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// Volatility calculates the volatility of a price series as the sample
// standard deviation of its simple returns, scaled by the square root of the
// number of periods. Requires at least 3 prices.
func Volatility(prices []float64) (float64, error) {
	if len(prices) < 3 {
		return 0, fmt.Errorf("volatility needs at least 3 prices, got %d: %w", len(prices), ErrInsufficientData)
	}
	returns := Returns(prices)
	return stat.StdDev(returns, nil) * math.Sqrt(float64(len(returns))), nil
}

// Beta calculates the beta of a portfolio against the market as the sample
// covariance of the paired return series divided by the sample variance of
// the market returns. Both series must be the same length and hold at least
// 2 observations.
func Beta(portfolioReturns, marketReturns []float64) (float64, error) {
	if len(portfolioReturns) != len(marketReturns) {
		return 0, fmt.Errorf("return series lengths differ: %d vs %d", len(portfolioReturns), len(marketReturns))
	}
	if len(marketReturns) < 2 {
		return 0, fmt.Errorf("beta needs at least 2 paired returns, got %d: %w", len(marketReturns), ErrInsufficientData)
	}
	variance := stat.Variance(marketReturns, nil)
	if variance == 0 {
		return 0, ErrZeroMarketVariance
	}
	return stat.Covariance(portfolioReturns, marketReturns, nil) / variance, nil
}
