package alpaca

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/marketdata"
)

// CurrentPrice gets the latest trade price for a contract code
func (c *Client) CurrentPrice(ctx context.Context, contractCode string) (*marketdata.Quote, error) {
	trade, err := c.market.GetLatestTrade(contractCode)
	if err != nil {
		if isSymbolNotFound(err) {
			return nil, fmt.Errorf("%s: %w", contractCode, marketdata.ErrInstrumentNotFound)
		}
		return nil, fmt.Errorf("failed to get latest trade for %s: %w", contractCode, err)
	}
	if trade == nil {
		return nil, fmt.Errorf("%s: %w", contractCode, marketdata.ErrInstrumentNotFound)
	}

	return &marketdata.Quote{
		ContractCode: contractCode,
		CurrentPrice: decimal.NewFromFloat(trade.Price),
	}, nil
}

// isSymbolNotFound reports whether an error from the data API is its 404
// "symbol not found" response rather than a transport or availability
// failure.
func isSymbolNotFound(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "not found") || strings.Contains(message, "404")
}
