package services

import (
	"testing"

	"financas/internal/core"
)

func TestBuildDashboard(t *testing.T) {
	today := core.NewDate(2025, 7, 15)

	bills := []core.Bill{
		{ID: 1, Status: core.BillPending, Supplier: "ENEL", Amount: core.Money{Cents: 18640}, DueDate: core.NewDate(2025, 6, 28)},
		{ID: 2, Status: core.BillPending, Supplier: "CLARO", Amount: core.Money{Cents: 9990}, DueDate: core.NewDate(2025, 7, 18)},
		{ID: 3, Status: core.BillPaid, Supplier: "Sabesp", Amount: core.Money{Cents: 7550}, DueDate: core.NewDate(2025, 7, 1)},
	}
	recs := []core.Receivable{
		{ID: 1, Status: core.ReceivableReceived, Source: "Salário", Amount: core.Money{Cents: 350000}, ReceivedDate: core.NewDate(2025, 7, 5)},
		{ID: 2, Status: core.ReceivablePending, Source: "Freelance", Amount: core.Money{Cents: 80000}, ReceivedDate: core.NewDate(2025, 7, 25)},
	}
	txs := []core.Transaction{
		{Type: core.TransactionIncome, Amount: core.Money{Cents: 20000}, Date: core.NewDate(2025, 7, 2)},
		{Type: core.TransactionExpense, Amount: core.Money{Cents: 30000}, Date: core.NewDate(2025, 7, 3)},
	}

	d := BuildDashboard(bills, recs, txs, today)

	// 350000 + 20000 - (18640 + 9990 + 30000)
	if want := int64(311370); d.Balance.Cents != want {
		t.Fatalf("balance: got %d, want %d", d.Balance.Cents, want)
	}
	if d.Bills.Overdue != 1 || d.Bills.Pending != 1 || d.Bills.Paid != 1 {
		t.Fatalf("bill stats: %+v", d.Bills)
	}
	if len(d.DueSoon) != 1 || d.DueSoon[0].ID != 2 {
		t.Fatalf("due soon: %+v", d.DueSoon)
	}
	if len(d.TopSuppliers) != 3 || d.TopSuppliers[0].Name != "ENEL" {
		t.Fatalf("top suppliers: %+v", d.TopSuppliers)
	}
	if len(d.TopSources) != 2 || d.TopSources[0].Name != "Salário" {
		t.Fatalf("top sources: %+v", d.TopSources)
	}
}

func TestBuildDashboardTruncatesTopGroups(t *testing.T) {
	today := core.NewDate(2025, 7, 15)

	var bills []core.Bill
	suppliers := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, s := range suppliers {
		bills = append(bills, core.Bill{
			ID:       int64(i + 1),
			Status:   core.BillPending,
			Supplier: s,
			Amount:   core.Money{Cents: int64((i + 1) * 1000)},
			DueDate:  core.NewDate(2025, 8, 1),
		})
	}

	d := BuildDashboard(bills, nil, nil, today)

	if len(d.TopSuppliers) != TopGroupLimit {
		t.Fatalf("expected top %d suppliers, got %d", TopGroupLimit, len(d.TopSuppliers))
	}
	if d.TopSuppliers[0].Name != "G" {
		t.Fatalf("expected largest supplier first, got %s", d.TopSuppliers[0].Name)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, nil, nil, core.NewDate(2025, 7, 15))
	if d.Balance.Cents != 0 {
		t.Fatalf("empty dashboard balance: %d", d.Balance.Cents)
	}
	if d.Bills.Total != 0 || d.Receivables.Total != 0 {
		t.Fatalf("empty dashboard stats: %+v", d)
	}
}
