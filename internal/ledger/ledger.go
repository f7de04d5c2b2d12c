// Package ledger provides access to the loan ledger store: the tabular
// source of loan rows plus the two tracked balance cells.
package ledger

import "context"

// Store is the loan ledger boundary. Rows and cell values are
// currency/percentage-formatted text; parsing happens in the engine.
type Store interface {
	// ReadLoans returns the loan rows in ledger order, one row per loan:
	// [loan_id, original_total, current_total, interest_rate, min_payment].
	ReadLoans(ctx context.Context) ([][]string, error)

	// ReadCell returns the text value of a single tracked cell.
	ReadCell(ctx context.Context, ref string) (string, error)

	// WriteCell overwrites a single tracked cell.
	WriteCell(ctx context.Context, ref, value string) error
}
