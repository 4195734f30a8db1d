// Package services composes the core aggregates into the view models the
// presentation surfaces consume, so no view recomputes statistics inline.
package services

import (
	"financas/internal/core"
)

// TopGroupLimit is how many supplier/source groups the dashboard shows.
const TopGroupLimit = 5

// Dashboard is the combined snapshot rendered by the dashboard view.
type Dashboard struct {
	Bills        core.BillStats
	Receivables  core.ReceivableStats
	Transactions core.TransactionSummary

	// Balance combines both record kinds with the transaction summary;
	// see core.Balance for the sign conventions.
	Balance core.Money

	TopSuppliers []core.GroupAmount
	TopSources   []core.GroupAmount

	// DueSoon lists unpaid bills falling due within 7 days, most urgent
	// first.
	DueSoon []core.Bill
}

// BuildDashboard computes every dashboard figure from one snapshot of
// records and one today value, so all numbers agree with each other.
func BuildDashboard(bills []core.Bill, recs []core.Receivable, txs []core.Transaction, today core.Date) Dashboard {
	billStats := core.ComputeBillStats(bills, today)
	recStats := core.ComputeReceivableStats(recs, today)
	txSummary := core.SummarizeTransactions(txs, today)

	var dueSoon []core.Bill
	for _, b := range bills {
		if b.DueSoon(today) {
			dueSoon = append(dueSoon, b)
		}
	}
	dueSoon = core.SortBillsByDueDate(dueSoon)

	return Dashboard{
		Bills:        billStats,
		Receivables:  recStats,
		Transactions: txSummary,
		Balance:      core.Balance(billStats, recStats, txSummary),
		TopSuppliers: truncate(core.SumBySupplier(bills), TopGroupLimit),
		TopSources:   truncate(core.SumBySource(recs), TopGroupLimit),
		DueSoon:      dueSoon,
	}
}

func truncate(groups []core.GroupAmount, n int) []core.GroupAmount {
	if len(groups) > n {
		return groups[:n]
	}
	return groups
}
