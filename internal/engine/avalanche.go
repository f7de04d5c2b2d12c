package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RankByRate returns the loans ordered by interest rate descending, the
// avalanche priority order. The sort is stable: rate ties keep their ledger
// order, which downstream allocation depends on. The input slice is not
// modified.
func RankByRate(loans []LoanRecord) []LoanRecord {
	ranked := make([]LoanRecord, len(loans))
	copy(ranked, loans)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InterestRate.GreaterThan(ranked[j].InterestRate)
	})
	return ranked
}

// Discretionary returns the budget left for extra paydown after every
// minimum payment is covered, rounded to cents. A negative result is a
// valid state, not an error: it means minimums alone exceed the budget and
// the allocator will hand out nothing extra.
func Discretionary(loans []LoanRecord, budget decimal.Decimal) decimal.Decimal {
	remaining := budget
	for _, loan := range loans {
		remaining = remaining.Sub(loan.MinPayment)
	}
	return remaining.Round(2)
}

// Allocate greedily distributes the discretionary budget across the ranked
// loans, highest interest rate first. It returns loan_id -> extra amount,
// containing only loans that received money. The input records are never
// mutated; per-pass balances live in a private map.
//
// The loop terminates when the budget is spent or when no loan has positive
// outstanding balance left, whichever comes first, so a budget exceeding
// the total debt cannot spin forever.
func Allocate(ranked []LoanRecord, discretionary decimal.Decimal) map[string]decimal.Decimal {
	extras := make(map[string]decimal.Decimal)
	if !discretionary.IsPositive() {
		return extras
	}

	outstanding := make(map[string]decimal.Decimal, len(ranked))
	for _, loan := range ranked {
		outstanding[loan.LoanID] = loan.CurrentTotal
	}

	remaining := discretionary
	for remaining.IsPositive() {
		allocated := false
		for _, loan := range ranked {
			if !remaining.IsPositive() {
				break
			}
			balance := outstanding[loan.LoanID]
			if !balance.IsPositive() {
				continue
			}

			// Rounded down so one step can never exceed the loan balance
			// or the remaining budget.
			amount := decimal.Min(balance, remaining).RoundDown(2)
			if !amount.IsPositive() {
				continue
			}

			extras[loan.LoanID] = extras[loan.LoanID].Add(amount)
			outstanding[loan.LoanID] = balance.Sub(amount)
			remaining = remaining.Sub(amount)
			allocated = true
		}
		if !allocated {
			// Every loan is exhausted; leftover budget stays unspent.
			break
		}
	}

	return extras
}
