package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComposePlan merges minimum payments with avalanche extras into one
// payment per loan and sorts the result by payment descending (stable on
// ties). Every loan appears in the plan, including zero-payment ones; the
// message formatter filters those out at presentation time.
func ComposePlan(loans []LoanRecord, extras map[string]decimal.Decimal) []PlanEntry {
	plan := make([]PlanEntry, 0, len(loans))
	for _, loan := range loans {
		payment := loan.MinPayment
		if extra, ok := extras[loan.LoanID]; ok {
			payment = payment.Add(extra)
		}
		plan = append(plan, PlanEntry{
			LoanID:       loan.LoanID,
			Payment:      payment.Round(2),
			CurrentTotal: loan.CurrentTotal,
		})
	}

	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].Payment.GreaterThan(plan[j].Payment)
	})
	return plan
}
