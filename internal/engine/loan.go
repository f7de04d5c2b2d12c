// Package engine implements the payment-allocation core: it turns a ledger
// snapshot of loans and a monthly budget into an ordered payment plan using
// the avalanche method.
package engine

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedRecord indicates a ledger row failed to parse. A bad row
	// aborts the whole run since skipping it would corrupt the
	// minimum-payment total.
	ErrMalformedRecord = errors.New("engine: malformed ledger record")

	// ErrDuplicateLoanID indicates two ledger rows share a loan id, which
	// makes the allocation target ambiguous.
	ErrDuplicateLoanID = errors.New("engine: duplicate loan id")
)

// LoanRecord is one loan line from the ledger, with all money fields parsed
// into exact decimals.
type LoanRecord struct {
	LoanID        string
	OriginalTotal decimal.Decimal
	CurrentTotal  decimal.Decimal
	InterestRate  decimal.Decimal
	MinPayment    decimal.Decimal
}

// PlanEntry is one line of the computed payment plan. CurrentTotal is the
// balance at allocation time, carried through so the formatter can flag
// loans paid off in full.
type PlanEntry struct {
	LoanID       string
	Payment      decimal.Decimal
	CurrentTotal decimal.Decimal
}

// PaidOff reports whether this payment clears the loan exactly.
func (e PlanEntry) PaidOff() bool {
	return e.CurrentTotal.Sub(e.Payment).IsZero()
}
