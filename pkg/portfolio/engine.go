package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/quantfold/rebalance/pkg/account"
	"github.com/quantfold/rebalance/pkg/marketdata"
)

// Engine composes the account and market data services into the rebalancing
// computation. It holds no state between calls; every computation works on a
// fresh snapshot.
type Engine struct {
	accounts account.Service
	market   marketdata.Service
}

// NewEngine creates a new rebalancing engine
func NewEngine(accounts account.Service, market marketdata.Service) *Engine {
	return &Engine{
		accounts: accounts,
		market:   market,
	}
}

// Proposal is a computed set of rebalancing orders together with the value of
// the portfolio snapshot they were computed from.
type Proposal struct {
	PortfolioValue decimal.Decimal
	Orders         []Order
}

// RebalancingOrders determines what orders need to be placed to move the
// account toward the portfolio weighting scheme in targetWeights. Weights are
// decimal fractions keyed by contract code; they need not sum to 1, the
// shortfall is left as cash. The returned orders are a proposal sorted by
// contract code; nothing is executed.
func (e *Engine) RebalancingOrders(ctx context.Context, accountID string, targetWeights map[string]decimal.Decimal) ([]Order, error) {
	proposal, err := e.ProposeRebalancing(ctx, accountID, targetWeights)
	if err != nil {
		return nil, err
	}
	return proposal.Orders, nil
}

// ProposeRebalancing is RebalancingOrders together with the portfolio value
// of the snapshot the orders were computed from, so callers recording or
// reporting the proposal do not need a second, possibly disagreeing fetch.
func (e *Engine) ProposeRebalancing(ctx context.Context, accountID string, targetWeights map[string]decimal.Decimal) (*Proposal, error) {
	if err := validateTargetWeights(targetWeights); err != nil {
		return nil, err
	}

	holdings, funds, err := e.fetchSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}

	currentQuantities := make(map[string]decimal.Decimal, len(holdings))
	for _, holding := range holdings {
		currentQuantities[holding.ContractCode] = holding.Shares
	}

	prices, err := e.fetchPrices(ctx, accountID, codeUnion(currentQuantities, targetWeights))
	if err != nil {
		return nil, err
	}

	value := PortfolioValue(funds.AvailableToInvest, holdings)
	if value.IsZero() && len(targetWeights) > 0 {
		return nil, ErrZeroPortfolioValue
	}

	desiredQuantities := make(map[string]decimal.Decimal, len(targetWeights))
	for code, weight := range targetWeights {
		price, ok := prices[code]
		if !ok || price.IsZero() {
			return nil, &MissingPriceError{ContractCode: code, Stage: StageDesiredQuantities}
		}
		desiredQuantities[code] = weight.Mul(value).Div(price).Round(4)
	}

	orders, err := OrdersFromDeltas(DiffHoldings(currentQuantities, desiredQuantities), prices)
	if err != nil {
		return nil, err
	}
	return &Proposal{PortfolioValue: value, Orders: orders}, nil
}

// CurrentPortfolioWeights calculates the allocation of the account as it
// stands, including its cash component. Read-only; no target is involved.
func (e *Engine) CurrentPortfolioWeights(ctx context.Context, accountID string) ([]Weight, error) {
	holdings, funds, err := e.fetchSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return CurrentWeights(funds.AvailableToInvest, holdings)
}

// CurrentPortfolioValue calculates the total value of the account, cash
// included, rounded to 2 decimal places.
func (e *Engine) CurrentPortfolioValue(ctx context.Context, accountID string) (decimal.Decimal, error) {
	holdings, funds, err := e.fetchSnapshot(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return PortfolioValue(funds.AvailableToInvest, holdings), nil
}

// fetchSnapshot issues the holdings and funds-summary requests concurrently
// and waits for both. Either failure aborts the snapshot.
func (e *Engine) fetchSnapshot(ctx context.Context, accountID string) ([]account.Holding, account.FundsSummary, error) {
	var (
		holdings []account.Holding
		funds    account.FundsSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holdings, err = e.accounts.Holdings(gctx, accountID)
		if err != nil {
			return &UpstreamError{Stage: StageHoldings, AccountID: accountID, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		funds, err = e.accounts.FundsSummary(gctx, accountID)
		if err != nil {
			return &UpstreamError{Stage: StageFundsSummary, AccountID: accountID, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, account.FundsSummary{}, err
	}
	return holdings, funds, nil
}

// fetchPrices resolves current prices for the given codes concurrently. The
// first lookup failure cancels the remaining requests and aborts the whole
// computation.
func (e *Engine) fetchPrices(ctx context.Context, accountID string, codes []string) (map[string]decimal.Decimal, error) {
	var mu sync.Mutex
	prices := make(map[string]decimal.Decimal, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	for _, code := range codes {
		code := code
		g.Go(func() error {
			quote, err := e.market.CurrentPrice(gctx, code)
			if err != nil {
				if errors.Is(err, marketdata.ErrInstrumentNotFound) {
					return &MissingPriceError{ContractCode: code, Stage: StagePrices}
				}
				return &UpstreamError{
					Stage:     StagePrices,
					AccountID: accountID,
					Err:       fmt.Errorf("current price for %s: %w", code, err),
				}
			}
			mu.Lock()
			prices[quote.ContractCode] = quote.CurrentPrice
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

// validateTargetWeights rejects malformed weighting schemes before any fetch
// happens. Negative weights and schemes allocating more than the whole
// portfolio are errors; summing to less than 1 is fine, the remainder stays
// in cash.
func validateTargetWeights(targetWeights map[string]decimal.Decimal) error {
	sum := decimal.Zero
	for code, weight := range targetWeights {
		if code == "" {
			return &InvalidWeightsError{Reason: "empty contract code"}
		}
		if weight.IsNegative() {
			return &InvalidWeightsError{ContractCode: code, Reason: "weight is negative"}
		}
		sum = sum.Add(weight)
	}
	if sum.GreaterThan(decimal.NewFromInt(1)) {
		return &InvalidWeightsError{Reason: fmt.Sprintf("weights sum to %s, exceeding 1", sum)}
	}
	return nil
}

// codeUnion collects every contract code that is either currently held or
// referenced by the target weights, so prices are fetched exactly once per
// code.
func codeUnion(current, target map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{}, len(current)+len(target))
	codes := make([]string, 0, len(current)+len(target))
	for code := range current {
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	for code := range target {
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes
}
