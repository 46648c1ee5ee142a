package portfolio

import "github.com/shopspring/decimal"

// DiffHoldings reconciles the quantities currently held against the desired
// quantities into a signed delta per contract code (desired minus current).
// Every code present in either input gets exactly one entry:
//
//   - held and desired: delta is the difference, rounded to 4 decimal places
//   - held only: delta is the full negated position (liquidation)
//   - desired only: delta is the full desired quantity (initiation)
//
// The result does not depend on the iteration order of the inputs.
func DiffHoldings(current, desired map[string]decimal.Decimal) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, len(current)+len(desired))

	for code, held := range current {
		if wanted, ok := desired[code]; ok {
			deltas[code] = wanted.Sub(held).Round(4)
		} else {
			deltas[code] = held.Neg()
		}
	}
	for code, wanted := range desired {
		if _, ok := current[code]; !ok {
			deltas[code] = wanted
		}
	}
	return deltas
}
