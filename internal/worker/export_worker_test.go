package worker

import (
	"context"
	"path/filepath"
	"testing"

	"inventory/internal/amqp"
	"inventory/internal/core"
	"inventory/internal/sheets/memory"
	"inventory/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store := memory.New()
	return NewExportWorker(repo, store, 10), repo, store
}

func TestHandleSyncMessage_ExportsRecord(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	e := core.Expense{ExpenseID: "e-1", Category: "Fuel", Amount: core.Num(150)}
	if err := repo.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	queueID, err := repo.EnqueueSync(ctx, "expenses", "e-1", amqp.OpCreate)
	if err != nil {
		t.Fatalf("EnqueueSync: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(queueID, "expenses", "e-1", amqp.OpCreate)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 || rows[0].Domain != "expenses" || rows[0].ID != "e-1" {
		t.Fatalf("rows = %+v", rows)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}
}

func TestHandleSyncMessage_DeleteSettlesWithoutExport(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	queueID, err := repo.EnqueueSync(ctx, "products", "p-1", amqp.OpDelete)
	if err != nil {
		t.Fatalf("EnqueueSync: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(queueID, "products", "p-1", amqp.OpDelete)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	if rows := store.Rows(); len(rows) != 0 {
		t.Errorf("rows = %+v, want none for delete", rows)
	}
	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}
}

func TestHandleSyncMessage_MissingRecordSettles(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	queueID, err := repo.EnqueueSync(ctx, "customers", "gone", amqp.OpCreate)
	if err != nil {
		t.Fatalf("EnqueueSync: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(queueID, "customers", "gone", amqp.OpCreate)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	if rows := store.Rows(); len(rows) != 0 {
		t.Errorf("rows = %+v, want none", rows)
	}
	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want settled", pending)
	}
}

func TestHandleSyncMessage_UnknownDomain(t *testing.T) {
	w, repo, _ := newTestWorker(t)
	ctx := context.Background()

	queueID, err := repo.EnqueueSync(ctx, "widgets", "w-1", amqp.OpCreate)
	if err != nil {
		t.Fatalf("EnqueueSync: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(queueID, "widgets", "w-1", amqp.OpCreate)
	if err := w.HandleSyncMessage(ctx, msg); err == nil {
		t.Fatal("expected error for unknown domain")
	}
}

func TestStartupSyncCheck_DrainsAllDomains(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	if err := repo.CreateProduct(ctx, core.Product{ProductID: "p-1", Name: "Widget", Price: core.Num(9)}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if err := repo.CreateSalary(ctx, core.Salary{UserID: "u-1", Name: "Asha", Email: "a@x.com", SalaryAmount: core.Num(1000)}); err != nil {
		t.Fatalf("CreateSalary: %v", err)
	}
	for _, e := range []struct{ domain, id string }{
		{"products", "p-1"},
		{"salaries", "u-1"},
	} {
		if _, err := repo.EnqueueSync(ctx, e.domain, e.id, amqp.OpCreate); err != nil {
			t.Fatalf("EnqueueSync(%s): %v", e.domain, err)
		}
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want 2", rows)
	}
	if rows[0].Domain != "products" || rows[1].Domain != "salaries" {
		t.Errorf("row domains = %s, %s", rows[0].Domain, rows[1].Domain)
	}
}

func TestProcessPending_Empty(t *testing.T) {
	w, _, store := newTestWorker(t)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if rows := store.Rows(); len(rows) != 0 {
		t.Errorf("rows = %+v", rows)
	}
}
