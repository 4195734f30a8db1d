package core

import (
	"sort"
	"strings"
)

// StatusFilter selects records by effective status. FilterAll matches every
// record, including ones whose date cannot be read.
type StatusFilter string

const (
	FilterAll     StatusFilter = "todas"
	FilterPending StatusFilter = "pendentes"
	FilterOverdue StatusFilter = "vencidas" // late, for receivables
	FilterSettled StatusFilter = "pagas"    // received, for receivables
)

// BillFilter composes the bill list predicates. All set fields must match
// (conjunction). Zero values mean "no filter applied".
type BillFilter struct {
	Status   StatusFilter
	Month    string // two-digit month, matched on month component only
	Supplier string // case-insensitive substring
}

// ReceivableFilter is the receivable counterpart of BillFilter.
type ReceivableFilter struct {
	Status StatusFilter
	Month  string
	Source string
}

// FilterBills returns a new slice holding the bills matching f, evaluated
// against today. The input is never mutated; relative order is preserved.
func FilterBills(bills []Bill, f BillFilter, today Date) []Bill {
	out := make([]Bill, 0, len(bills))
	for _, b := range bills {
		if !billStatusMatches(b, f.Status, today) {
			continue
		}
		if f.Month != "" && (b.DueDate.IsZero() || b.DueDate.MonthComponent() != f.Month) {
			continue
		}
		if f.Supplier != "" && !containsFold(b.Supplier, f.Supplier) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FilterReceivables returns a new slice holding the receivables matching f.
func FilterReceivables(recs []Receivable, f ReceivableFilter, today Date) []Receivable {
	out := make([]Receivable, 0, len(recs))
	for _, r := range recs {
		if !receivableStatusMatches(r, f.Status, today) {
			continue
		}
		if f.Month != "" && (r.ReceivedDate.IsZero() || r.ReceivedDate.MonthComponent() != f.Month) {
			continue
		}
		if f.Source != "" && !containsFold(r.Source, f.Source) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func billStatusMatches(b Bill, f StatusFilter, today Date) bool {
	if f == "" || f == FilterAll {
		return true
	}
	status, err := b.EffectiveStatus(today)
	if err != nil {
		// Records with unreadable dates only show up under "all".
		return false
	}
	switch f {
	case FilterPending:
		return status == BillPending
	case FilterOverdue:
		return status == BillOverdue
	case FilterSettled:
		return status == BillPaid
	}
	return true
}

func receivableStatusMatches(r Receivable, f StatusFilter, today Date) bool {
	if f == "" || f == FilterAll {
		return true
	}
	status, err := r.EffectiveStatus(today)
	if err != nil {
		return false
	}
	switch f {
	case FilterPending:
		return status == ReceivablePending
	case FilterOverdue:
		return status == ReceivableLate
	case FilterSettled:
		return status == ReceivableReceived
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortBillsByPriority orders overdue bills first (regardless of date), then
// the rest ascending by due date. The sort is stable: bills with equal keys
// keep their relative order. Returns a new slice.
func SortBillsByPriority(bills []Bill, today Date) []Bill {
	out := make([]Bill, len(bills))
	copy(out, bills)
	sort.SliceStable(out, func(i, j int) bool {
		oi := isBillOverdue(out[i], today)
		oj := isBillOverdue(out[j], today)
		if oi != oj {
			return oi
		}
		return out[i].DueDate.Before(out[j].DueDate.Time)
	})
	return out
}

// SortBillsByDueDate orders bills ascending by due date, the listing order
// of the bill views. Stable; returns a new slice.
func SortBillsByDueDate(bills []Bill) []Bill {
	out := make([]Bill, len(bills))
	copy(out, bills)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate.Time)
	})
	return out
}

// SortReceivablesByPriority orders late receivables first, then the rest
// ascending by expected date. Stable; returns a new slice.
func SortReceivablesByPriority(recs []Receivable, today Date) []Receivable {
	out := make([]Receivable, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		li := isReceivableLate(out[i], today)
		lj := isReceivableLate(out[j], today)
		if li != lj {
			return li
		}
		return out[i].ReceivedDate.Before(out[j].ReceivedDate.Time)
	})
	return out
}

// SortReceivablesByDate orders receivables descending by received date, the
// listing order of the receivable views. Stable; returns a new slice.
func SortReceivablesByDate(recs []Receivable) []Receivable {
	out := make([]Receivable, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].ReceivedDate.Before(out[i].ReceivedDate.Time)
	})
	return out
}

func isBillOverdue(b Bill, today Date) bool {
	status, err := b.EffectiveStatus(today)
	return err == nil && status == BillOverdue
}

func isReceivableLate(r Receivable, today Date) bool {
	status, err := r.EffectiveStatus(today)
	return err == nil && status == ReceivableLate
}
