package alpaca

import (
	"context"
	"fmt"
	"math"

	alpaca "github.com/alpacahq/alpaca-trade-api-go/v2/alpaca"
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/portfolio"
)

// PlaceOrder places a proposed rebalancing order as a limit order. Buys are
// priced at 99% of the current ask and expire at end of day; sells are priced
// at 101% of the current bid and stay active until filled.
func (c *Client) PlaceOrder(ctx context.Context, order portfolio.Order) error {
	quote, err := c.market.GetLatestQuote(order.ContractCode)
	if err != nil {
		return fmt.Errorf("failed to get latest quote for %s: %w", order.ContractCode, err)
	}

	var (
		side        alpaca.Side
		timeInForce alpaca.TimeInForce
		limit       float64
	)
	switch order.Side {
	case portfolio.SideBuy:
		side = alpaca.Buy
		timeInForce = alpaca.Day
		limit = quote.AskPrice * 0.99
	case portfolio.SideSell:
		side = alpaca.Sell
		timeInForce = alpaca.GTC
		limit = quote.BidPrice * 1.01
	default:
		return fmt.Errorf("unknown order side %q for %s", order.Side, order.ContractCode)
	}

	// Alpaca rejects limit prices with more than 2 decimal places
	limitPrice := decimal.NewFromFloat(math.Round(limit*100) / 100)
	qty := order.Amount
	symbol := order.ContractCode

	_, err = c.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		AssetKey:    &symbol,
		Qty:         &qty,
		Side:        side,
		Type:        alpaca.Limit,
		TimeInForce: timeInForce,
		LimitPrice:  &limitPrice,
	})
	if err != nil {
		return fmt.Errorf("failed to place %s order for %s: %w", order.Side, order.ContractCode, err)
	}
	return nil
}

// PlaceStopLossOrder places a stop order selling the entire position held in
// contractCode once the price drops to stopPrice.
func (c *Client) PlaceStopLossOrder(ctx context.Context, contractCode string, stopPrice decimal.Decimal) error {
	position, err := c.trading.GetPosition(contractCode)
	if err != nil {
		return fmt.Errorf("failed to get position for %s: %w", contractCode, err)
	}

	qty := position.Qty
	stop := stopPrice.Round(2)
	symbol := contractCode

	_, err = c.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		AssetKey:    &symbol,
		Qty:         &qty,
		Side:        alpaca.Sell,
		Type:        alpaca.Stop,
		TimeInForce: alpaca.GTC,
		StopPrice:   &stop,
	})
	if err != nil {
		return fmt.Errorf("failed to place stop-loss order for %s at %s: %w", contractCode, stop, err)
	}
	return nil
}
