package portfolio

import "github.com/shopspring/decimal"

// Side indicates the direction of an order
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// CashCode is the synthetic contract code used for the cash component of an
// account in weight listings.
const CashCode = "cash"

// Order is a proposed rebalancing order. Amount is the number of shares,
// rounded to 3 decimal places; EstimatedOrderValue is rounded to 2.
type Order struct {
	ContractCode        string          `json:"contract_code"`
	Side                Side            `json:"side"`
	Amount              decimal.Decimal `json:"amount"`
	EstimatedOrderValue decimal.Decimal `json:"estimated_order_value"`
}

// Weight is one entry of an allocation breakdown, rounded to 4 decimal places
type Weight struct {
	ContractCode string          `json:"contract_code"`
	Weight       decimal.Decimal `json:"weight"`
}
