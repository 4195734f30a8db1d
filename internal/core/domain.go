package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Stored bill statuses, persisted verbatim.
	BillPending BillStatus = "PENDENTE"
	BillPaid    BillStatus = "PAGO"
	BillOverdue BillStatus = "VENCIDO"

	// Stored receivable statuses.
	ReceivableReceived ReceivableStatus = "RECEBIDO"
	ReceivablePending  ReceivableStatus = "PENDENTE"
	ReceivableLate     ReceivableStatus = "ATRASADO"

	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type (
	BillStatus       string
	ReceivableStatus string
	TransactionType  string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Bill is a payable obligation owed to a supplier. Status holds the
	// stored status set by user action; the status used for display comes
	// from EffectiveStatus.
	Bill struct {
		ID           int64
		Status       BillStatus
		Supplier     string
		Amount       Money
		DueDate      Date
		Installments int
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// Receivable is an expected or received inflow. For pending/late items
	// ReceivedDate holds the expected date.
	Receivable struct {
		ID           int64
		Status       ReceivableStatus
		Description  string
		Amount       Money
		ReceivedDate Date
		Category     string
		Source       string
		Notes        string
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// Transaction is an ad-hoc income/expense entry held by the caller,
	// not persisted in the record store.
	Transaction struct {
		Type        TransactionType
		Amount      Money
		Date        Date
		Description string
		Category    string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError aggregates every invariant violation found on a record,
// one human-readable message per violated field, so a form layer can
// attribute each message individually.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Today truncates now to a calendar date. Callers must evaluate it once per
// pass and thread the result through, so every record in the pass derives
// against the same day.
func Today(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// MonthKey returns the YYYY-MM prefix used for month grouping.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// MonthComponent returns the two-digit month ("01".."12").
func (d Date) MonthComponent() string {
	return d.Format("01")
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillPaid, BillOverdue:
		return true
	}
	return false
}

func (s ReceivableStatus) Valid() bool {
	switch s {
	case ReceivableReceived, ReceivablePending, ReceivableLate:
		return true
	}
	return false
}

// Validate checks the bill invariants and returns a *ValidationError listing
// every violation, or nil when the bill is valid.
func (b Bill) Validate() error {
	var violations []string
	if !b.Status.Valid() {
		violations = append(violations, "Status inválido")
	}
	if strings.TrimSpace(b.Supplier) == "" {
		violations = append(violations, "Fornecedor é obrigatório")
	}
	if b.Amount.Cents <= 0 {
		violations = append(violations, "Valor deve ser maior que zero")
	}
	if b.DueDate.IsZero() {
		violations = append(violations, "Data de vencimento inválida")
	}
	if b.Installments < 1 {
		violations = append(violations, "Número de parcelas deve ser pelo menos 1")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Validate checks the receivable invariants, same contract as Bill.Validate.
func (r Receivable) Validate() error {
	var violations []string
	if !r.Status.Valid() {
		violations = append(violations, "Status inválido")
	}
	if strings.TrimSpace(r.Description) == "" {
		violations = append(violations, "Descrição é obrigatória")
	}
	if r.Amount.Cents <= 0 {
		violations = append(violations, "Valor deve ser maior que zero")
	}
	if r.ReceivedDate.IsZero() {
		violations = append(violations, "Data de recebimento inválida")
	}
	if strings.TrimSpace(r.Category) == "" {
		violations = append(violations, "Categoria é obrigatória")
	}
	if strings.TrimSpace(r.Source) == "" {
		violations = append(violations, "Fonte é obrigatória")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
