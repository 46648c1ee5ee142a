package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OrdersFromDeltas converts signed quantity deltas into concrete orders. A
// positive delta becomes a BUY, a negative delta a SELL; deltas whose amount
// rounds to zero at 3 decimal places are filtered out so no-op orders are
// never emitted. Amounts are rounded to 3 decimal places and estimated order
// values to 2. Returns a MissingPriceError if an order-producing delta has no
// price. Orders are sorted by contract code so the output is deterministic.
func OrdersFromDeltas(deltas, prices map[string]decimal.Decimal) ([]Order, error) {
	orders := make([]Order, 0, len(deltas))
	for code, delta := range deltas {
		size := delta.Abs()
		amount := size.Round(3)
		if amount.IsZero() {
			continue
		}
		price, ok := prices[code]
		if !ok {
			return nil, &MissingPriceError{ContractCode: code, Stage: StageOrders}
		}

		side := SideBuy
		if delta.IsNegative() {
			side = SideSell
		}
		orders = append(orders, Order{
			ContractCode:        code,
			Side:                side,
			Amount:              amount,
			EstimatedOrderValue: size.Mul(price).Round(2),
		})
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ContractCode < orders[j].ContractCode
	})
	return orders, nil
}
