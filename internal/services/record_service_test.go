package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"inventory/internal/core"
	"inventory/internal/storage"
)

func newTestService(t *testing.T) *RecordService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	svc := NewRecordService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestCreateExpense_AssignsIDAndTimestamp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, core.Expense{
		Category: "Fuel",
		Amount:   core.Num(150),
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.ExpenseID == "" {
		t.Error("expected a generated expense id")
	}
	if !created.Timestamp.Valid {
		t.Error("expected a defaulted timestamp")
	}

	list, err := svc.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(list) != 1 || list[0].ExpenseID != created.ExpenseID {
		t.Errorf("list = %+v", list)
	}
}

func TestCreateExpense_Invalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateExpense(context.Background(), core.Expense{Amount: core.Num(10)})
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("err = %v, want ErrEmptyCategory", err)
	}
}

func TestCreateProduct_KeepsCallerID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, core.Product{
		ProductID: "p-1",
		Name:      "Widget",
		Price:     core.Num(10),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ProductID != "p-1" {
		t.Errorf("ProductID = %q, want p-1", created.ProductID)
	}
}

func TestCreateSalary_DerivesRemaining(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateSalary(context.Background(), core.Salary{
		Name:          "Asha",
		Email:         "asha@example.com",
		SalaryAmount:  core.Num(1000),
		PaidAmount:    core.Num(400),
		PetrolExpense: core.Num(50),
		OtherExpense:  core.Num(25),
	})
	if err != nil {
		t.Fatalf("CreateSalary: %v", err)
	}
	if !created.RemainingAmount.Valid || created.RemainingAmount.Float64 != 525 {
		t.Errorf("RemainingAmount = %+v, want 525", created.RemainingAmount)
	}
}

func TestCreateCustomer_DerivesTotals(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateCustomer(context.Background(), core.Customer{
		Name:       "Bilal",
		UnitCost:   core.Num(12),
		Quantity:   core.Num(10),
		PaidAmount: core.Num(40),
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if !created.TotalAmount.Valid || created.TotalAmount.Float64 != 120 {
		t.Errorf("TotalAmount = %+v, want 120", created.TotalAmount)
	}
	if !created.RemainingAmount.Valid || created.RemainingAmount.Float64 != 80 {
		t.Errorf("RemainingAmount = %+v, want 80", created.RemainingAmount)
	}
}

func TestDelete_QueuesSyncEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, core.Expense{Category: "Food", Amount: core.Num(20)})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := svc.DeleteExpense(ctx, created.ExpenseID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	pending, err := svc.storage.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %+v, want create and delete entries", pending)
	}
	if pending[1].Op != "delete" || pending[1].RecordID != created.ExpenseID {
		t.Errorf("second entry = %+v", pending[1])
	}
}

func TestDelete_Missing(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteCustomer(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClose_NilComponents(t *testing.T) {
	svc := &RecordService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
