package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses currency- or percentage-formatted ledger text
// ("$1,234.56", "6.8%") into an exact decimal. This is the single parsing
// boundary: everything past ParseLedger works only with decimals.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrMalformedRecord)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedRecord, s)
	}
	return d, nil
}

// ParseLedger converts raw ledger rows into LoanRecords, preserving row
// order. Each row is [loan_id, original_total, current_total, interest_rate,
// min_payment] as formatted text. Any unparseable field or repeated loan id
// fails the whole snapshot.
func ParseLedger(rows [][]string) ([]LoanRecord, error) {
	loans := make([]LoanRecord, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("%w: row %d has %d fields, want 5", ErrMalformedRecord, i, len(row))
		}

		id := strings.TrimSpace(row[0])
		if id == "" {
			return nil, fmt.Errorf("%w: row %d has empty loan id", ErrMalformedRecord, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLoanID, id)
		}
		seen[id] = true

		rec := LoanRecord{LoanID: id}
		fields := []struct {
			name string
			dst  *decimal.Decimal
			raw  string
		}{
			{"original_total", &rec.OriginalTotal, row[1]},
			{"current_total", &rec.CurrentTotal, row[2]},
			{"interest_rate", &rec.InterestRate, row[3]},
			{"min_payment", &rec.MinPayment, row[4]},
		}
		for _, f := range fields {
			d, err := ParseAmount(f.raw)
			if err != nil {
				return nil, fmt.Errorf("row %d (%s) %s: %w", i, id, f.name, err)
			}
			*f.dst = d
		}

		loans = append(loans, rec)
	}

	return loans, nil
}
