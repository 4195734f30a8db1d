package core

import (
	"errors"
	"testing"
)

func validBill() Bill {
	return Bill{
		Status:       BillPending,
		Supplier:     "ENEL",
		Amount:       Money{Cents: 18640},
		DueDate:      NewDate(2025, 6, 28),
		Installments: 1,
	}
}

func TestBillValidate(t *testing.T) {
	if err := validBill().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Bill)
	}{
		{"empty supplier", func(b *Bill) { b.Supplier = "  " }},
		{"zero amount", func(b *Bill) { b.Amount.Cents = 0 }},
		{"negative amount", func(b *Bill) { b.Amount.Cents = -100 }},
		{"zero due date", func(b *Bill) { b.DueDate = Date{} }},
		{"installments below one", func(b *Bill) { b.Installments = 0 }},
		{"unknown status", func(b *Bill) { b.Status = "QUITADO" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBill()
			tc.mutate(&b)
			err := b.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(ve.Violations) == 0 {
				t.Fatal("expected at least one violation message")
			}
		})
	}
}

func TestBillValidateCollectsAllViolations(t *testing.T) {
	b := Bill{Status: "X", Amount: Money{Cents: -1}}
	err := b.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	// status, supplier, amount, date, installments
	if len(ve.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

func TestReceivableValidate(t *testing.T) {
	good := Receivable{
		Status:       ReceivablePending,
		Description:  "Projeto freelance",
		Amount:       Money{Cents: 80000},
		ReceivedDate: NewDate(2025, 7, 25),
		Category:     "Trabalho",
		Source:       "Freelance",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Description = ""
	bad.Source = " "
	err := bad.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Violations)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-28")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || int(d.Month()) != 6 || d.Day() != 28 {
		t.Fatalf("parsed wrong date: %s", d)
	}

	for _, bad := range []string{"", "28/06/2025", "2025-13-01", "not-a-date"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := NewDate(2025, 6, 28).MonthKey(); got != "2025-06" {
		t.Fatalf("got %q, want 2025-06", got)
	}
	if got := NewDate(2025, 6, 28).MonthComponent(); got != "06" {
		t.Fatalf("got %q, want 06", got)
	}
}
