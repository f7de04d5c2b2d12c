package engine

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"$50", "50"},
		{"6.8%", "6.8"},
		{"  $3,000.00 ", "3000"},
		{"0", "0"},
		{"12345.67", "12345.67"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tt.in, err)
			}
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "$", "abc", "$1,2x4"} {
		_, err := ParseAmount(in)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("ParseAmount(%q) err = %v, want ErrMalformedRecord", in, err)
		}
	}
}

func TestParseLedger(t *testing.T) {
	rows := [][]string{
		{"Sallie Mae", "$4,500.00", "$1,000.00", "6.8%", "$50.00"},
		{"Navient", "$8,000.00", "$5,000.00", "4.5%", "$100.00"},
	}

	loans, err := ParseLedger(rows)
	if err != nil {
		t.Fatalf("ParseLedger error: %v", err)
	}
	if len(loans) != 2 {
		t.Fatalf("len(loans) = %d, want 2", len(loans))
	}

	first := loans[0]
	if first.LoanID != "Sallie Mae" {
		t.Errorf("LoanID = %q, want Sallie Mae", first.LoanID)
	}
	if !first.OriginalTotal.Equal(dec(t, "4500")) {
		t.Errorf("OriginalTotal = %s, want 4500", first.OriginalTotal)
	}
	if !first.CurrentTotal.Equal(dec(t, "1000")) {
		t.Errorf("CurrentTotal = %s, want 1000", first.CurrentTotal)
	}
	if !first.InterestRate.Equal(dec(t, "6.8")) {
		t.Errorf("InterestRate = %s, want 6.8", first.InterestRate)
	}
	if !first.MinPayment.Equal(dec(t, "50")) {
		t.Errorf("MinPayment = %s, want 50", first.MinPayment)
	}
}

func TestParseLedger_PreservesRowOrder(t *testing.T) {
	rows := [][]string{
		{"c", "$1", "$1", "1%", "$1"},
		{"a", "$1", "$1", "1%", "$1"},
		{"b", "$1", "$1", "1%", "$1"},
	}

	loans, err := ParseLedger(rows)
	if err != nil {
		t.Fatalf("ParseLedger error: %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if loans[i].LoanID != want {
			t.Fatalf("row %d = %s, want %s", i, loans[i].LoanID, want)
		}
	}
}

func TestParseLedger_MalformedField(t *testing.T) {
	rows := [][]string{
		{"ok", "$100", "$100", "5%", "$10"},
		{"bad", "$100", "not-money", "5%", "$10"},
	}

	_, err := ParseLedger(rows)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
}

func TestParseLedger_ShortRow(t *testing.T) {
	_, err := ParseLedger([][]string{{"only", "$100"}})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
}

func TestParseLedger_DuplicateLoanID(t *testing.T) {
	rows := [][]string{
		{"dup", "$100", "$100", "5%", "$10"},
		{"dup", "$200", "$200", "3%", "$20"},
	}

	_, err := ParseLedger(rows)
	if !errors.Is(err, ErrDuplicateLoanID) {
		t.Fatalf("err = %v, want ErrDuplicateLoanID", err)
	}
}
