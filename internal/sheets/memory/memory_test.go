package memory

import (
	"context"
	"testing"

	"inventory/internal/core"
	"inventory/internal/sheets"
)

func TestMemoryStoreAppend(t *testing.T) {
	s := New()

	ref, err := s.Append(context.Background(), sheets.RowForExpense(core.Expense{
		ExpenseID: "e-1",
		Category:  "Fuel",
		Amount:    core.Num(100),
	}))
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	ref, err = s.Append(context.Background(), sheets.RowForCustomer(core.Customer{
		UserID: "u-1",
		Name:   "Ada",
	}))
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Domain != sheets.DomainExpenses || rows[0].ID != "e-1" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Domain != sheets.DomainCustomers || rows[1].ID != "u-1" {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
}

func TestMemoryStoreRejectsDomainlessRow(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), sheets.Row{ID: "x"}); err == nil {
		t.Fatal("expected error for row without domain")
	}
	if len(s.Rows()) != 0 {
		t.Fatal("rejected row must not be stored")
	}
}
