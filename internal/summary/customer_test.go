package summary

import (
	"testing"

	"inventory/internal/core"
)

func TestCustomersNameWiseSortedDescending(t *testing.T) {
	records := []core.Customer{
		{UserID: "u1", Name: "A", TotalAmount: core.Num(50), Timestamp: date("2024-01-05")},
		{UserID: "u2", Name: "B", TotalAmount: core.Num(120), Timestamp: date("2024-01-06")},
		{UserID: "u3", Name: "A", TotalAmount: core.Num(10), Timestamp: date("2024-01-07")},
	}

	s := Customers(records, Options{})

	if len(s.ByName) != 2 {
		t.Fatalf("ByName = %+v", s.ByName)
	}
	if s.ByName[0].Name != "B" || s.ByName[0].Total != 120 {
		t.Fatalf("ByName[0] = %+v", s.ByName[0])
	}
	if s.ByName[1].Name != "A" || s.ByName[1].Total != 60 {
		t.Fatalf("ByName[1] = %+v", s.ByName[1])
	}
	if s.ByName[1].Transactions != 2 {
		t.Fatalf("transactions = %d, want 2", s.ByName[1].Transactions)
	}
}

func TestCustomersSortTiesKeepInsertionOrder(t *testing.T) {
	records := []core.Customer{
		{UserID: "u1", Name: "First", TotalAmount: core.Num(100), Timestamp: date("2024-01-01")},
		{UserID: "u2", Name: "Second", TotalAmount: core.Num(100), Timestamp: date("2024-01-02")},
	}

	s := Customers(records, Options{})
	if s.ByName[0].Name != "First" || s.ByName[1].Name != "Second" {
		t.Fatalf("tie order = %q, %q", s.ByName[0].Name, s.ByName[1].Name)
	}
}

func TestCustomersGrandTotals(t *testing.T) {
	records := []core.Customer{
		{UserID: "u1", Name: "A", Quantity: core.Num(2), PaidAmount: core.Num(40), RemainingAmount: core.Num(80), TotalAmount: core.Num(120), Timestamp: date("2024-02-01")},
		{UserID: "u2", Name: "B", Quantity: core.Num(1), PaidAmount: core.Num(10), RemainingAmount: core.Num(0), TotalAmount: core.Num(10), Timestamp: date("2024-02-02")},
	}

	s := Customers(records, Options{})
	if s.TotalQuantity != 3 || s.TotalPaid != 50 || s.TotalRemaining != 80 || s.GrandTotal != 130 {
		t.Fatalf("totals = %+v", s)
	}
	if s.CustomerCount != 2 {
		t.Fatalf("CustomerCount = %d", s.CustomerCount)
	}

	var partitioned float64
	for _, n := range s.ByName {
		partitioned += n.Total
	}
	if partitioned != s.GrandTotal {
		t.Fatalf("partitions sum to %v, grand total is %v", partitioned, s.GrandTotal)
	}
}

func TestCustomersUnknownNameFallback(t *testing.T) {
	records := []core.Customer{
		{UserID: "u1", TotalAmount: core.Num(30), Timestamp: date("2024-02-01")},
	}

	s := Customers(records, Options{})
	if s.ByName[0].Name != Unknown {
		t.Fatalf("ByName[0].Name = %q", s.ByName[0].Name)
	}
	if s.Rows[0].Name != NotAvailable {
		t.Fatalf("row name = %q", s.Rows[0].Name)
	}
}

func TestCustomersMonthWiseNestsByName(t *testing.T) {
	records := []core.Customer{
		{UserID: "u1", Name: "A", PaidAmount: core.Num(10), TotalAmount: core.Num(30), Timestamp: date("2024-03-01")},
		{UserID: "u2", Name: "B", PaidAmount: core.Num(5), TotalAmount: core.Num(5), Timestamp: date("2024-03-20")},
		{UserID: "u3", Name: "A", PaidAmount: core.Num(1), TotalAmount: core.Num(2), Timestamp: date("2024-04-02")},
	}

	s := Customers(records, Options{})

	if len(s.ByMonth) != 2 {
		t.Fatalf("ByMonth = %+v", s.ByMonth)
	}
	march := s.ByMonth[0]
	if march.Month != "March 2024" || len(march.Names) != 2 {
		t.Fatalf("march = %+v", march)
	}
	if march.Names[0].Name != "A" || march.Names[0].Paid != 10 {
		t.Fatalf("march.Names[0] = %+v", march.Names[0])
	}
	april := s.ByMonth[1]
	if april.Month != "April 2024" || len(april.Names) != 1 || april.Names[0].Total != 2 {
		t.Fatalf("april = %+v", april)
	}
}
