package notify

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/engine"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestTrendPhrase_Down(t *testing.T) {
	tr := engine.ComputeTrend(dec(t, "4500.00"), dec(t, "5000.00"))
	if got := TrendPhrase(tr); got != "down 500.0 from" {
		t.Errorf("TrendPhrase = %q, want %q", got, "down 500.0 from")
	}
}

func TestTrendPhrase_Same(t *testing.T) {
	tr := engine.ComputeTrend(dec(t, "5000"), dec(t, "5000.00"))
	if got := TrendPhrase(tr); got != "the same as" {
		t.Errorf("TrendPhrase = %q, want %q", got, "the same as")
	}
}

func TestTrendPhrase_Up(t *testing.T) {
	tr := engine.ComputeTrend(dec(t, "6234.50"), dec(t, "5000.00"))
	if got := TrendPhrase(tr); got != "up 1,234.5 from" {
		t.Errorf("TrendPhrase = %q, want %q", got, "up 1,234.5 from")
	}
}

func TestComposeMessage(t *testing.T) {
	plan := []engine.PlanEntry{
		{LoanID: "A", Payment: dec(t, "200"), CurrentTotal: dec(t, "1000")},
		{LoanID: "B", Payment: dec(t, "100"), CurrentTotal: dec(t, "5000")},
	}
	trend := engine.ComputeTrend(dec(t, "4500"), dec(t, "5000"))

	msg := ComposeMessage(dec(t, "4500"), trend, plan)

	for _, want := range []string{
		"Your current loan balance is $4,500.0, down 500.0 from last period.",
		"    A: $200.0",
		"    B: $100.0",
		"Don't forget to update the spreadsheet",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}

	// Payment order must follow the plan order: A's line before B's.
	if strings.Index(msg, "A: $200.0") > strings.Index(msg, "B: $100.0") {
		t.Error("plan lines out of order")
	}
}

func TestComposeMessage_FiltersZeroPayments(t *testing.T) {
	plan := []engine.PlanEntry{
		{LoanID: "active", Payment: dec(t, "50"), CurrentTotal: dec(t, "500")},
		{LoanID: "dormant", Payment: decimal.Zero, CurrentTotal: decimal.Zero},
	}
	trend := engine.ComputeTrend(dec(t, "500"), dec(t, "500"))

	msg := ComposeMessage(dec(t, "500"), trend, plan)

	if strings.Contains(msg, "dormant") {
		t.Errorf("zero-payment loan leaked into message:\n%s", msg)
	}
}

func TestComposeMessage_FlagsPaidOffLoans(t *testing.T) {
	plan := []engine.PlanEntry{
		{LoanID: "A", Payment: dec(t, "1000"), CurrentTotal: dec(t, "1000")},
		{LoanID: "B", Payment: dec(t, "100"), CurrentTotal: dec(t, "5000")},
	}
	trend := engine.ComputeTrend(dec(t, "6000"), dec(t, "7000"))

	msg := ComposeMessage(dec(t, "6000"), trend, plan)

	if !strings.Contains(msg, "A: $1,000.0 🔥 FINISHED 🔥") {
		t.Errorf("paid-off flag missing for A:\n%s", msg)
	}
	if strings.Contains(msg, "B: $100.0 🔥") {
		t.Errorf("B wrongly flagged as finished:\n%s", msg)
	}
}
