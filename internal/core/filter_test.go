package core

import (
	"reflect"
	"testing"
)

func sampleBills() []Bill {
	return []Bill{
		{ID: 1, Status: BillPending, Supplier: "ENEL", Amount: Money{Cents: 18640}, DueDate: NewDate(2025, 6, 28)},
		{ID: 2, Status: BillPaid, Supplier: "CLARO", Amount: Money{Cents: 9990}, DueDate: NewDate(2025, 7, 10)},
		{ID: 3, Status: BillPending, Supplier: "Sabesp", Amount: Money{Cents: 7550}, DueDate: NewDate(2025, 7, 18)},
		{ID: 4, Status: BillPending, Supplier: "ENEL", Amount: Money{Cents: 12000}, DueDate: NewDate(2025, 8, 2)},
	}
}

func billIDs(bills []Bill) []int64 {
	ids := make([]int64, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	return ids
}

func TestFilterBillsByStatus(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := sampleBills()

	all := FilterBills(bills, BillFilter{Status: FilterAll}, today)
	if len(all) != len(bills) {
		t.Fatalf("filter all: got %d, want %d", len(all), len(bills))
	}

	pending := FilterBills(bills, BillFilter{Status: FilterPending}, today)
	overdue := FilterBills(bills, BillFilter{Status: FilterOverdue}, today)
	paid := FilterBills(bills, BillFilter{Status: FilterSettled}, today)

	// The three single-status subsets partition the full set.
	if len(pending)+len(overdue)+len(paid) != len(bills) {
		t.Fatalf("status subsets do not partition: %d+%d+%d != %d",
			len(pending), len(overdue), len(paid), len(bills))
	}
	seen := make(map[int64]bool)
	for _, subset := range [][]Bill{pending, overdue, paid} {
		for _, b := range subset {
			if seen[b.ID] {
				t.Fatalf("bill %d appears in more than one subset", b.ID)
			}
			seen[b.ID] = true
		}
	}

	if got := billIDs(overdue); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("overdue: got %v, want [1]", got)
	}
	if got := billIDs(paid); !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("paid: got %v, want [2]", got)
	}
}

func TestFilterBillsBySupplierSubstring(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := []Bill{
		{ID: 1, Status: BillPending, Supplier: "ENEL", DueDate: NewDate(2025, 7, 20)},
		{ID: 2, Status: BillPending, Supplier: "CLARO", DueDate: NewDate(2025, 7, 21)},
	}

	got := FilterBills(bills, BillFilter{Supplier: "nel"}, today)
	if len(got) != 1 || got[0].Supplier != "ENEL" {
		t.Fatalf("supplier filter: got %v", billIDs(got))
	}
}

func TestFilterBillsByMonth(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := sampleBills()
	// Month matches on the month component only, any year.
	bills = append(bills, Bill{ID: 5, Status: BillPaid, Supplier: "ENEL", DueDate: NewDate(2024, 7, 3)})

	got := FilterBills(bills, BillFilter{Month: "07"}, today)
	if want := []int64{2, 3, 5}; !reflect.DeepEqual(billIDs(got), want) {
		t.Fatalf("month filter: got %v, want %v", billIDs(got), want)
	}
}

func TestFilterBillsConjunction(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := sampleBills()

	got := FilterBills(bills, BillFilter{Status: FilterPending, Month: "07", Supplier: "sab"}, today)
	if want := []int64{3}; !reflect.DeepEqual(billIDs(got), want) {
		t.Fatalf("combined filter: got %v, want %v", billIDs(got), want)
	}
}

func TestFilterBillsDoesNotMutateInput(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := sampleBills()
	before := make([]Bill, len(bills))
	copy(before, bills)

	_ = FilterBills(bills, BillFilter{Status: FilterOverdue}, today)
	_ = SortBillsByPriority(bills, today)
	_ = SortBillsByDueDate(bills)

	if !reflect.DeepEqual(bills, before) {
		t.Fatal("input slice was mutated")
	}
}

func TestFilterBillsEmptyResult(t *testing.T) {
	today := NewDate(2025, 7, 15)
	got := FilterBills(sampleBills(), BillFilter{Supplier: "nobody"}, today)
	if got == nil {
		t.Fatal("expected empty non-nil result")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSortBillsByPriority(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := []Bill{
		{ID: 1, Status: BillPending, DueDate: NewDate(2025, 8, 2)},
		{ID: 2, Status: BillPending, DueDate: NewDate(2025, 7, 1)}, // overdue
		{ID: 3, Status: BillPending, DueDate: NewDate(2025, 7, 18)},
		{ID: 4, Status: BillPending, DueDate: NewDate(2025, 6, 10)}, // overdue
		{ID: 5, Status: BillPaid, DueDate: NewDate(2025, 6, 1)},
	}

	got := SortBillsByPriority(bills, today)

	// Every overdue bill before every non-overdue one, each group by date.
	if want := []int64{4, 2, 5, 3, 1}; !reflect.DeepEqual(billIDs(got), want) {
		t.Fatalf("priority order: got %v, want %v", billIDs(got), want)
	}
}

func TestSortBillsByPriorityStableOnEqualDates(t *testing.T) {
	today := NewDate(2025, 7, 15)
	bills := []Bill{
		{ID: 1, Status: BillPending, DueDate: NewDate(2025, 7, 20)},
		{ID: 2, Status: BillPending, DueDate: NewDate(2025, 7, 20)},
		{ID: 3, Status: BillPending, DueDate: NewDate(2025, 7, 20)},
	}
	got := SortBillsByPriority(bills, today)
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(billIDs(got), want) {
		t.Fatalf("equal dates must keep original order: got %v", billIDs(got))
	}
}

func TestSortReceivablesByDate(t *testing.T) {
	recs := []Receivable{
		{ID: 1, ReceivedDate: NewDate(2025, 7, 1)},
		{ID: 2, ReceivedDate: NewDate(2025, 7, 20)},
		{ID: 3, ReceivedDate: NewDate(2025, 6, 5)},
	}
	got := SortReceivablesByDate(recs)
	want := []int64{2, 1, 3} // descending
	ids := make([]int64, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("descending order: got %v, want %v", ids, want)
	}
}

func TestFilterReceivables(t *testing.T) {
	today := NewDate(2025, 7, 15)
	recs := []Receivable{
		{ID: 1, Status: ReceivableReceived, Source: "Salário", ReceivedDate: NewDate(2025, 7, 5)},
		{ID: 2, Status: ReceivablePending, Source: "Freelance", ReceivedDate: NewDate(2025, 7, 25)},
		{ID: 3, Status: ReceivablePending, Source: "Freelance", ReceivedDate: NewDate(2025, 7, 2)}, // late
	}

	late := FilterReceivables(recs, ReceivableFilter{Status: FilterOverdue}, today)
	if len(late) != 1 || late[0].ID != 3 {
		t.Fatalf("late filter: got %v", late)
	}

	free := FilterReceivables(recs, ReceivableFilter{Source: "FREE"}, today)
	if len(free) != 2 {
		t.Fatalf("source filter: got %d, want 2", len(free))
	}
}
