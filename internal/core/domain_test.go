package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestProductUnmarshalIDFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"domain key", `{"productId":"p-1","name":"Widget"}`, "p-1"},
		{"generic id", `{"id":"p-2","name":"Widget"}`, "p-2"},
		{"mongo id", `{"_id":"p-3","name":"Widget"}`, "p-3"},
		{"domain key wins", `{"productId":"p-4","id":"other","_id":"older"}`, "p-4"},
		{"generic beats mongo", `{"id":"p-5","_id":"older"}`, "p-5"},
		{"no id", `{"name":"Widget"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.ProductID != tt.want {
				t.Fatalf("ProductID = %q, want %q", p.ProductID, tt.want)
			}
		})
	}
}

func TestExpenseUnmarshalLenientFields(t *testing.T) {
	var e Expense
	raw := `{"_id":"e-1","category":"Fuel","amount":"150.00","timestamp":"2024-03-05"}`
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.ExpenseID != "e-1" {
		t.Fatalf("ExpenseID = %q", e.ExpenseID)
	}
	if !e.Amount.Valid || e.Amount.Float64 != 150 {
		t.Fatalf("Amount = %+v", e.Amount)
	}
	if !e.Timestamp.Valid {
		t.Fatal("expected valid timestamp")
	}
}

func TestProductValidate(t *testing.T) {
	p := Product{Name: "Widget", Price: Num(9.99)}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid product: %v", err)
	}
	p.Name = "  "
	if err := p.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("got %v, want ErrEmptyName", err)
	}
	p.Name = "Widget"
	p.Price = Number{}
	if err := p.Validate(); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("got %v, want ErrInvalidPrice", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	e := Expense{Category: "Fuel", Amount: Num(10)}
	if err := e.Validate(); err != nil {
		t.Fatalf("valid expense: %v", err)
	}
	e.Amount = Num(0)
	if err := e.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	e = Expense{Amount: Num(10)}
	if err := e.Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("got %v, want ErrEmptyCategory", err)
	}
}

func TestSalaryDeriveRemaining(t *testing.T) {
	s := Salary{
		SalaryAmount:  Num(1000),
		PaidAmount:    Num(400),
		PetrolExpense: Num(50),
		OtherExpense:  Num(25),
	}
	s.DeriveRemaining()
	if got := s.RemainingAmount.Or(-1); got != 525 {
		t.Fatalf("RemainingAmount = %v, want 525", got)
	}

	// A stored value is authoritative and never recomputed.
	s = Salary{SalaryAmount: Num(1000), PaidAmount: Num(400), RemainingAmount: Num(100)}
	s.DeriveRemaining()
	if got := s.RemainingAmount.Or(-1); got != 100 {
		t.Fatalf("RemainingAmount = %v, want 100", got)
	}

	// Missing deduction fields count as zero.
	s = Salary{SalaryAmount: Num(800)}
	s.DeriveRemaining()
	if got := s.RemainingAmount.Or(-1); got != 800 {
		t.Fatalf("RemainingAmount = %v, want 800", got)
	}
}

func TestCustomerDeriveTotals(t *testing.T) {
	c := Customer{UnitCost: Num(60), Quantity: Num(2), PaidAmount: Num(40)}
	c.DeriveTotals()
	if got := c.TotalAmount.Or(-1); got != 120 {
		t.Fatalf("TotalAmount = %v, want 120", got)
	}
	if got := c.RemainingAmount.Or(-1); got != 80 {
		t.Fatalf("RemainingAmount = %v, want 80", got)
	}

	c = Customer{TotalAmount: Num(200), PaidAmount: Num(50)}
	c.DeriveTotals()
	if got := c.TotalAmount.Or(-1); got != 200 {
		t.Fatalf("TotalAmount = %v, want 200", got)
	}
	if got := c.RemainingAmount.Or(-1); got != 150 {
		t.Fatalf("RemainingAmount = %v, want 150", got)
	}
}
