package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"inventory/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record id matches no row.
var ErrNotFound = errors.New("record not found")

// Sync queue states.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Products

func (r *SQLiteRepository) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, price, rating, stock_quantity, category, created_at
		FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price, &p.Rating, &p.StockQuantity, &p.Category, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetProduct(ctx context.Context, id string) (core.Product, error) {
	var p core.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT product_id, name, price, rating, stock_quantity, category, created_at
		FROM products WHERE product_id = ?`, id).
		Scan(&p.ProductID, &p.Name, &p.Price, &p.Rating, &p.StockQuantity, &p.Category, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, ErrNotFound
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) CreateProduct(ctx context.Context, p core.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (product_id, name, price, rating, stock_quantity, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ProductID, p.Name, p.Price, p.Rating, p.StockQuantity, p.Category, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	slog.InfoContext(ctx, "Product saved", "id", p.ProductID, "name", p.Name)
	return nil
}

func (r *SQLiteRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "products", "product_id", id)
}

// Expenses

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT expense_id, category, amount, timestamp
		FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ExpenseID, &e.Category, &e.Amount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	var e core.Expense
	err := r.db.QueryRowContext(ctx, `
		SELECT expense_id, category, amount, timestamp
		FROM expenses WHERE expense_id = ?`, id).
		Scan(&e.ExpenseID, &e.Category, &e.Amount, &e.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (expense_id, category, amount, timestamp)
		VALUES (?, ?, ?, ?)`,
		e.ExpenseID, e.Category, e.Amount, e.Timestamp)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved", "id", e.ExpenseID, "category", e.Category)
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "expenses", "expense_id", id)
}

// Salaries

func (r *SQLiteRepository) ListSalaries(ctx context.Context) ([]core.Salary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, email, phone_number, salary_amount, paid_amount,
		       petrol_expense, other_expense, remaining_amount, start_date, end_date, timestamp
		FROM salaries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()

	var out []core.Salary
	for rows.Next() {
		var s core.Salary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Email, &s.PhoneNumber, &s.SalaryAmount, &s.PaidAmount,
			&s.PetrolExpense, &s.OtherExpense, &s.RemainingAmount, &s.StartDate, &s.EndDate, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetSalary(ctx context.Context, id string) (core.Salary, error) {
	var s core.Salary
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, phone_number, salary_amount, paid_amount,
		       petrol_expense, other_expense, remaining_amount, start_date, end_date, timestamp
		FROM salaries WHERE user_id = ?`, id).
		Scan(&s.UserID, &s.Name, &s.Email, &s.PhoneNumber, &s.SalaryAmount, &s.PaidAmount,
			&s.PetrolExpense, &s.OtherExpense, &s.RemainingAmount, &s.StartDate, &s.EndDate, &s.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Salary{}, ErrNotFound
	}
	if err != nil {
		return core.Salary{}, fmt.Errorf("get salary: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) CreateSalary(ctx context.Context, s core.Salary) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO salaries (user_id, name, email, phone_number, salary_amount, paid_amount,
		                      petrol_expense, other_expense, remaining_amount, start_date, end_date, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.Name, s.Email, s.PhoneNumber, s.SalaryAmount, s.PaidAmount,
		s.PetrolExpense, s.OtherExpense, s.RemainingAmount, s.StartDate, s.EndDate, s.Timestamp)
	if err != nil {
		return fmt.Errorf("create salary: %w", err)
	}

	slog.InfoContext(ctx, "Salary saved", "id", s.UserID, "name", s.Name)
	return nil
}

func (r *SQLiteRepository) DeleteSalary(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "salaries", "user_id", id)
}

// Customers

func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, email, phone_number, unit_cost, quantity,
		       paid_amount, total_amount, remaining_amount, timestamp
		FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []core.Customer
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &c.PhoneNumber, &c.UnitCost, &c.Quantity,
			&c.PaidAmount, &c.TotalAmount, &c.RemainingAmount, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCustomer(ctx context.Context, id string) (core.Customer, error) {
	var c core.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, phone_number, unit_cost, quantity,
		       paid_amount, total_amount, remaining_amount, timestamp
		FROM customers WHERE user_id = ?`, id).
		Scan(&c.UserID, &c.Name, &c.Email, &c.PhoneNumber, &c.UnitCost, &c.Quantity,
			&c.PaidAmount, &c.TotalAmount, &c.RemainingAmount, &c.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Customer{}, ErrNotFound
	}
	if err != nil {
		return core.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateCustomer(ctx context.Context, c core.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (user_id, name, email, phone_number, unit_cost, quantity,
		                       paid_amount, total_amount, remaining_amount, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Name, c.Email, c.PhoneNumber, c.UnitCost, c.Quantity,
		c.PaidAmount, c.TotalAmount, c.RemainingAmount, c.Timestamp)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	slog.InfoContext(ctx, "Customer saved", "id", c.UserID, "name", c.Name)
	return nil
}

func (r *SQLiteRepository) DeleteCustomer(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "customers", "user_id", id)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table, column, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, column), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Sync queue

// PendingSync is one outbox entry waiting for export.
type PendingSync struct {
	ID        int64
	Domain    string
	RecordID  string
	Op        string
	CreatedAt time.Time
}

// EnqueueSync records an outbox entry for the export worker.
func (r *SQLiteRepository) EnqueueSync(ctx context.Context, domain, recordID, op string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_queue (domain, record_id, op) VALUES (?, ?, ?)`,
		domain, recordID, op)
	if err != nil {
		return 0, fmt.Errorf("enqueue sync: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("enqueue sync: %w", err)
	}
	return id, nil
}

// GetPendingSync returns outbox entries still waiting for export, oldest first.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingSync, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, domain, record_id, op, created_at
		FROM sync_queue WHERE sync_status = ? ORDER BY id LIMIT ?`,
		SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var out []PendingSync
	for rows.Next() {
		var p PendingSync
		var created core.DateTime
		if err := rows.Scan(&p.ID, &p.Domain, &p.RecordID, &p.Op, &created); err != nil {
			return nil, fmt.Errorf("scan pending sync: %w", err)
		}
		p.CreatedAt = created.Time
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced marks an outbox entry as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET sync_status = ?, synced_at = CURRENT_TIMESTAMP WHERE id = ?`,
		SyncDone, id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Sync entry marked as synced", "id", id)
	return nil
}

// MarkSyncError marks an outbox entry as failed; a later sweep retries it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET sync_status = ? WHERE id = ?`,
		SyncError, id)
	if err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}

	slog.WarnContext(ctx, "Sync entry marked with error", "id", id)
	return nil
}
