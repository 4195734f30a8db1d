package core

import "fmt"

// DataError marks a stored record whose date cannot be interpreted at
// status-derivation time. It should not occur when validation is enforced at
// the store boundary; aggregation surfaces such records instead of aborting.
type DataError struct {
	Kind  string // "bill" or "receivable"
	ID    int64
	Field string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s %d: unreadable %s", e.Kind, e.ID, e.Field)
}

// DaysUntil returns the number of whole days from today until d. Negative
// when d is in the past. Both values are calendar dates, so the division is
// exact and immune to intra-day clock drift.
func DaysUntil(today, d Date) int {
	return int(d.Sub(today.Time).Hours() / 24)
}

// EffectiveStatus derives the status used for display and aggregation.
// PAGO is terminal regardless of the due date. Otherwise a due date strictly
// before today means VENCIDO, else PENDENTE.
func (b Bill) EffectiveStatus(today Date) (BillStatus, error) {
	if b.Status == BillPaid {
		return BillPaid, nil
	}
	if b.DueDate.IsZero() {
		return "", &DataError{Kind: "bill", ID: b.ID, Field: "due date"}
	}
	if DaysUntil(today, b.DueDate) < 0 {
		return BillOverdue, nil
	}
	return BillPending, nil
}

// DueSoon reports whether an unpaid bill falls due within the next 7 days,
// today included. A UI warning flag, not a distinct status.
func (b Bill) DueSoon(today Date) bool {
	if b.Status == BillPaid || b.DueDate.IsZero() {
		return false
	}
	days := DaysUntil(today, b.DueDate)
	return days >= 0 && days <= 7
}

// EffectiveStatus mirrors the bill derivation: RECEBIDO is terminal, an
// expected date in the past means ATRASADO, else PENDENTE.
func (r Receivable) EffectiveStatus(today Date) (ReceivableStatus, error) {
	if r.Status == ReceivableReceived {
		return ReceivableReceived, nil
	}
	if r.ReceivedDate.IsZero() {
		return "", &DataError{Kind: "receivable", ID: r.ID, Field: "received date"}
	}
	if DaysUntil(today, r.ReceivedDate) < 0 {
		return ReceivableLate, nil
	}
	return ReceivablePending, nil
}
