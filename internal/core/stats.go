package core

import "sort"

// BillStats summarizes a full snapshot of bills by effective status.
// Records whose due date cannot be read are excluded from the status buckets
// and counted in Invalid instead of aborting the whole aggregate.
type BillStats struct {
	Total   int
	Pending int
	Paid    int
	Overdue int
	Invalid int

	PendingAmount Money
	PaidAmount    Money
	OverdueAmount Money
	// Outstanding sums every bill whose effective status is not PAGO;
	// unpaid bills are expenses even before they are paid.
	Outstanding Money
}

// ReceivableStats summarizes a full snapshot of receivables.
type ReceivableStats struct {
	Total    int
	Received int
	Pending  int
	Late     int
	Invalid  int

	TotalAmount    Money
	ReceivedAmount Money
	PendingAmount  Money
	LateAmount     Money
}

// GroupAmount is an amount summed under a grouping key (supplier, source or
// YYYY-MM month).
type GroupAmount struct {
	Name   string
	Amount Money
}

// ComputeBillStats aggregates bills against a single today value.
func ComputeBillStats(bills []Bill, today Date) BillStats {
	var st BillStats
	st.Total = len(bills)
	for _, b := range bills {
		status, err := b.EffectiveStatus(today)
		if err != nil {
			st.Invalid++
			continue
		}
		switch status {
		case BillPaid:
			st.Paid++
			st.PaidAmount.Cents += b.Amount.Cents
		case BillOverdue:
			st.Overdue++
			st.OverdueAmount.Cents += b.Amount.Cents
			st.Outstanding.Cents += b.Amount.Cents
		case BillPending:
			st.Pending++
			st.PendingAmount.Cents += b.Amount.Cents
			st.Outstanding.Cents += b.Amount.Cents
		}
	}
	return st
}

// ComputeReceivableStats aggregates receivables against a single today value.
func ComputeReceivableStats(recs []Receivable, today Date) ReceivableStats {
	var st ReceivableStats
	st.Total = len(recs)
	for _, r := range recs {
		status, err := r.EffectiveStatus(today)
		if err != nil {
			st.Invalid++
			continue
		}
		st.TotalAmount.Cents += r.Amount.Cents
		switch status {
		case ReceivableReceived:
			st.Received++
			st.ReceivedAmount.Cents += r.Amount.Cents
		case ReceivableLate:
			st.Late++
			st.LateAmount.Cents += r.Amount.Cents
		case ReceivablePending:
			st.Pending++
			st.PendingAmount.Cents += r.Amount.Cents
		}
	}
	return st
}

// SumBySupplier sums bill amounts per supplier, sorted descending by amount.
// Equal amounts break ties by name so the order is deterministic. The caller
// truncates to its top N.
func SumBySupplier(bills []Bill) []GroupAmount {
	sums := make(map[string]int64)
	for _, b := range bills {
		sums[b.Supplier] += b.Amount.Cents
	}
	return sortedGroups(sums)
}

// SumBySource sums receivable amounts per source, same ordering contract as
// SumBySupplier.
func SumBySource(recs []Receivable) []GroupAmount {
	sums := make(map[string]int64)
	for _, r := range recs {
		sums[r.Source] += r.Amount.Cents
	}
	return sortedGroups(sums)
}

// SumBillsByMonth sums bill amounts per YYYY-MM due month. Bills with an
// unreadable date are skipped.
func SumBillsByMonth(bills []Bill) []GroupAmount {
	sums := make(map[string]int64)
	for _, b := range bills {
		if b.DueDate.IsZero() {
			continue
		}
		sums[b.DueDate.MonthKey()] += b.Amount.Cents
	}
	return sortedGroups(sums)
}

// SumReceivablesByMonth sums receivable amounts per YYYY-MM received month.
func SumReceivablesByMonth(recs []Receivable) []GroupAmount {
	sums := make(map[string]int64)
	for _, r := range recs {
		if r.ReceivedDate.IsZero() {
			continue
		}
		sums[r.ReceivedDate.MonthKey()] += r.Amount.Cents
	}
	return sortedGroups(sums)
}

func sortedGroups(sums map[string]int64) []GroupAmount {
	groups := make([]GroupAmount, 0, len(sums))
	for name, cents := range sums {
		groups = append(groups, GroupAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Amount.Cents != groups[j].Amount.Cents {
			return groups[i].Amount.Cents > groups[j].Amount.Cents
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// TransactionSummary aggregates the ad-hoc transactions kept by the caller.
type TransactionSummary struct {
	TotalIncome     Money
	TotalExpenses   Money
	Balance         Money
	MonthlyIncome   Money
	MonthlyExpenses Money
	MonthlyBalance  Money
}

// SummarizeTransactions computes overall and current-month totals. "Current
// month" means the calendar month of today.
func SummarizeTransactions(txs []Transaction, today Date) TransactionSummary {
	var s TransactionSummary
	for _, t := range txs {
		inMonth := !t.Date.IsZero() && t.Date.MonthKey() == today.MonthKey()
		switch t.Type {
		case TransactionIncome:
			s.TotalIncome.Cents += t.Amount.Cents
			if inMonth {
				s.MonthlyIncome.Cents += t.Amount.Cents
			}
		case TransactionExpense:
			s.TotalExpenses.Cents += t.Amount.Cents
			if inMonth {
				s.MonthlyExpenses.Cents += t.Amount.Cents
			}
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.MonthlyBalance = s.MonthlyIncome.Sub(s.MonthlyExpenses)
	return s
}

// Balance combines both record kinds with the transaction summary:
// only received receivables count as income, while every outstanding bill
// counts as an expense even before it is paid.
//
//	balance = received + monthlyIncome - (outstanding + monthlyExpenses)
func Balance(billStats BillStats, recStats ReceivableStats, txs TransactionSummary) Money {
	income := recStats.ReceivedAmount.Add(txs.MonthlyIncome)
	expenses := billStats.Outstanding.Add(txs.MonthlyExpenses)
	return income.Sub(expenses)
}
