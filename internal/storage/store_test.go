package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"financas/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "financas.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testBill() core.Bill {
	return core.Bill{
		Status:       core.BillPending,
		Supplier:     "ENEL",
		Amount:       core.Money{Cents: 18640},
		DueDate:      core.NewDate(2025, 6, 28),
		Installments: 1,
	}
}

func TestInsertAndGetBill(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.InsertBill(ctx, testBill())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := store.GetBill(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Supplier != "ENEL" || got.Amount.Cents != 18640 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.DueDate.String() != "2025-06-28" {
		t.Fatalf("due date: got %s", got.DueDate)
	}
}

func TestInsertBillRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	bad := testBill()
	bad.Supplier = ""
	bad.Amount.Cents = -1

	_, err := store.InsertBill(ctx, bad)
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *core.ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Violations)
	}

	bills, err := store.ListBills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bills) != 0 {
		t.Fatal("invalid bill must not be stored")
	}
}

func TestUpdateBillPartial(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.InsertBill(ctx, testBill())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	paid := core.BillPaid
	updated, err := store.UpdateBill(ctx, created.ID, BillPatch{Status: &paid})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Status != core.BillPaid {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	// Untouched fields survive a partial update.
	if updated.Supplier != created.Supplier || updated.Amount != created.Amount {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Fatal("id must never change")
	}
}

func TestUpdateBillNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	paid := core.BillPaid
	_, err := store.UpdateBill(ctx, 999, BillPatch{Status: &paid})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.InsertBill(ctx, testBill())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := store.DeleteBill(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetBill(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteBillNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.InsertBill(ctx, testBill()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Deleting a missing id signals not-found and leaves the set unchanged.
	if err := store.DeleteBill(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	bills, err := store.ListBills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("record set changed: %d bills", len(bills))
	}
}

func TestListBillsOrderedByDueDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	dates := []core.Date{
		core.NewDate(2025, 8, 2),
		core.NewDate(2025, 6, 28),
		core.NewDate(2025, 7, 18),
	}
	for _, d := range dates {
		b := testBill()
		b.DueDate = d
		if _, err := store.InsertBill(ctx, b); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	bills, err := store.ListBills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-06-28", "2025-07-18", "2025-08-02"}
	for i, b := range bills {
		if b.DueDate.String() != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, b.DueDate, want[i])
		}
	}
}

func testReceivable() core.Receivable {
	return core.Receivable{
		Status:       core.ReceivablePending,
		Description:  "Projeto freelance",
		Amount:       core.Money{Cents: 80000},
		ReceivedDate: core.NewDate(2025, 7, 25),
		Category:     "Trabalho",
		Source:       "Freelance",
	}
}

func TestReceivableCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.InsertReceivable(ctx, testReceivable())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	received := core.ReceivableReceived
	notes := "pago adiantado"
	updated, err := store.UpdateReceivable(ctx, created.ID, ReceivablePatch{
		Status: &received,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != core.ReceivableReceived || updated.Notes != "pago adiantado" {
		t.Fatalf("update mismatch: %+v", updated)
	}
	if updated.Description != created.Description {
		t.Fatal("partial update clobbered description")
	}

	if err := store.DeleteReceivable(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteReceivable(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReceivablesOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	dates := []core.Date{
		core.NewDate(2025, 7, 1),
		core.NewDate(2025, 7, 20),
		core.NewDate(2025, 6, 5),
	}
	for _, d := range dates {
		r := testReceivable()
		r.ReceivedDate = d
		if _, err := store.InsertReceivable(ctx, r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	recs, err := store.ListReceivables(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-07-20", "2025-07-01", "2025-06-05"}
	for i, r := range recs {
		if r.ReceivedDate.String() != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, r.ReceivedDate, want[i])
		}
	}
}

func TestUnsyncedLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.InsertBill(ctx, testBill())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	unsynced, err := store.ListUnsyncedBills(ctx, 10)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(unsynced) != 1 || unsynced[0].ID != created.ID {
		t.Fatalf("expected new bill to be unsynced: %v", unsynced)
	}

	if err := store.MarkBillSynced(ctx, created.ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	unsynced, err = store.ListUnsyncedBills(ctx, 10)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(unsynced) != 0 {
		t.Fatalf("expected no unsynced bills, got %d", len(unsynced))
	}

	// An update flags the record for sync again.
	paid := core.BillPaid
	if _, err := store.UpdateBill(ctx, created.ID, BillPatch{Status: &paid}); err != nil {
		t.Fatalf("update: %v", err)
	}
	unsynced, err = store.ListUnsyncedBills(ctx, 10)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(unsynced) != 1 {
		t.Fatalf("expected updated bill to be unsynced again, got %d", len(unsynced))
	}
}
