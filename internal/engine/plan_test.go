package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComposePlan_MinimumsPlusExtras(t *testing.T) {
	loans := twoLoans(t)
	extras := map[string]decimal.Decimal{"A": dec(t, "150")}

	plan := ComposePlan(loans, extras)

	// Budget 300 scenario: A pays 200, B pays 100, sorted A first.
	if len(plan) != 2 {
		t.Fatalf("len(plan) = %d, want 2", len(plan))
	}
	if plan[0].LoanID != "A" || !plan[0].Payment.Equal(dec(t, "200")) {
		t.Errorf("plan[0] = %s %s, want A 200", plan[0].LoanID, plan[0].Payment)
	}
	if plan[1].LoanID != "B" || !plan[1].Payment.Equal(dec(t, "100")) {
		t.Errorf("plan[1] = %s %s, want B 100", plan[1].LoanID, plan[1].Payment)
	}
}

func TestComposePlan_SpilloverScenario(t *testing.T) {
	// Budget 2000: A gets 1000 extra (1050 total), B gets 850 extra (950 total).
	loans := twoLoans(t)
	extras := map[string]decimal.Decimal{
		"A": dec(t, "1000"),
		"B": dec(t, "850"),
	}

	plan := ComposePlan(loans, extras)

	if plan[0].LoanID != "A" || !plan[0].Payment.Equal(dec(t, "1050")) {
		t.Errorf("plan[0] = %s %s, want A 1050", plan[0].LoanID, plan[0].Payment)
	}
	if plan[1].LoanID != "B" || !plan[1].Payment.Equal(dec(t, "950")) {
		t.Errorf("plan[1] = %s %s, want B 950", plan[1].LoanID, plan[1].Payment)
	}
}

func TestComposePlan_MinimumsOnlyWhenNoExtras(t *testing.T) {
	// Budget 100 scenario: discretionary is negative, plan equals minimums.
	plan := ComposePlan(twoLoans(t), map[string]decimal.Decimal{})

	if plan[0].LoanID != "B" || !plan[0].Payment.Equal(dec(t, "100")) {
		t.Errorf("plan[0] = %s %s, want B 100", plan[0].LoanID, plan[0].Payment)
	}
	if plan[1].LoanID != "A" || !plan[1].Payment.Equal(dec(t, "50")) {
		t.Errorf("plan[1] = %s %s, want A 50", plan[1].LoanID, plan[1].Payment)
	}
}

func TestComposePlan_StableOnEqualPayments(t *testing.T) {
	loans := []LoanRecord{
		loan(t, "x", "500", "5", "75"),
		loan(t, "y", "600", "4", "75"),
		loan(t, "z", "700", "3", "75"),
	}

	plan := ComposePlan(loans, nil)
	for i, want := range []string{"x", "y", "z"} {
		if plan[i].LoanID != want {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, plan[i].LoanID, want)
		}
	}
}

func TestComposePlan_RetainsZeroPaymentLoans(t *testing.T) {
	loans := []LoanRecord{
		loan(t, "active", "500", "5", "25"),
		loan(t, "dormant", "0", "5", "0"),
	}

	plan := ComposePlan(loans, nil)
	if len(plan) != 2 {
		t.Fatalf("len(plan) = %d, want 2 (zero-payment entries retained)", len(plan))
	}
	if plan[1].LoanID != "dormant" || !plan[1].Payment.IsZero() {
		t.Errorf("plan[1] = %s %s, want dormant 0", plan[1].LoanID, plan[1].Payment)
	}
}

func TestPlanEntry_PaidOff(t *testing.T) {
	entry := PlanEntry{Payment: dec(t, "1050"), CurrentTotal: dec(t, "1000")}
	if entry.PaidOff() {
		t.Error("payment above balance should not read as exact payoff")
	}

	exact := PlanEntry{Payment: dec(t, "1000"), CurrentTotal: dec(t, "1000")}
	if !exact.PaidOff() {
		t.Error("exact payoff not detected")
	}

	// The flag is exact zero, not a tolerance band.
	near := PlanEntry{Payment: dec(t, "999.99"), CurrentTotal: dec(t, "1000")}
	if near.PaidOff() {
		t.Error("near payoff must not count as paid off")
	}
}
