package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inventory/internal/amqp"
	"inventory/internal/core"
	"inventory/internal/sheets"
	"inventory/internal/storage"
)

// RecordService orchestrates record operations across SQLite and AMQP.
// Writes land in SQLite first, then a sync entry is queued and announced
// over AMQP so the export worker can push the record to Google Sheets.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateProduct validates and saves a product, then queues it for export.
func (s *RecordService) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	if !p.CreatedAt.Valid {
		p.CreatedAt = core.At(time.Now())
	}
	if err := p.Validate(); err != nil {
		return core.Product{}, fmt.Errorf("validate product: %w", err)
	}

	if err := s.storage.CreateProduct(ctx, p); err != nil {
		return core.Product{}, fmt.Errorf("save product: %w", err)
	}

	s.queueSync(ctx, sheets.DomainProducts, p.ProductID, amqp.OpCreate)
	return p, nil
}

func (s *RecordService) ListProducts(ctx context.Context) ([]core.Product, error) {
	return s.storage.ListProducts(ctx)
}

func (s *RecordService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.queueSync(ctx, sheets.DomainProducts, id, amqp.OpDelete)
	return nil
}

// CreateExpense validates and saves an expense, then queues it for export.
func (s *RecordService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ExpenseID == "" {
		e.ExpenseID = uuid.NewString()
	}
	if !e.Timestamp.Valid {
		e.Timestamp = core.At(time.Now())
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.storage.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.queueSync(ctx, sheets.DomainExpenses, e.ExpenseID, amqp.OpCreate)
	return e, nil
}

func (s *RecordService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx)
}

func (s *RecordService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.queueSync(ctx, sheets.DomainExpenses, id, amqp.OpDelete)
	return nil
}

// CreateSalary validates and saves a salary entry, computing the remaining
// amount from the deductions when the caller did not provide one.
func (s *RecordService) CreateSalary(ctx context.Context, sal core.Salary) (core.Salary, error) {
	if sal.UserID == "" {
		sal.UserID = uuid.NewString()
	}
	if !sal.Timestamp.Valid {
		sal.Timestamp = core.At(time.Now())
	}
	sal.DeriveRemaining()
	if err := sal.Validate(); err != nil {
		return core.Salary{}, fmt.Errorf("validate salary: %w", err)
	}

	if err := s.storage.CreateSalary(ctx, sal); err != nil {
		return core.Salary{}, fmt.Errorf("save salary: %w", err)
	}

	s.queueSync(ctx, sheets.DomainSalaries, sal.UserID, amqp.OpCreate)
	return sal, nil
}

func (s *RecordService) ListSalaries(ctx context.Context) ([]core.Salary, error) {
	return s.storage.ListSalaries(ctx)
}

func (s *RecordService) DeleteSalary(ctx context.Context, id string) error {
	if err := s.storage.DeleteSalary(ctx, id); err != nil {
		return fmt.Errorf("delete salary: %w", err)
	}
	s.queueSync(ctx, sheets.DomainSalaries, id, amqp.OpDelete)
	return nil
}

// CreateCustomer validates and saves a customer transaction, filling in the
// total and remaining amounts from unit cost and quantity when unset.
func (s *RecordService) CreateCustomer(ctx context.Context, c core.Customer) (core.Customer, error) {
	if c.UserID == "" {
		c.UserID = uuid.NewString()
	}
	if !c.Timestamp.Valid {
		c.Timestamp = core.At(time.Now())
	}
	c.DeriveTotals()
	if err := c.Validate(); err != nil {
		return core.Customer{}, fmt.Errorf("validate customer: %w", err)
	}

	if err := s.storage.CreateCustomer(ctx, c); err != nil {
		return core.Customer{}, fmt.Errorf("save customer: %w", err)
	}

	s.queueSync(ctx, sheets.DomainCustomers, c.UserID, amqp.OpCreate)
	return c, nil
}

func (s *RecordService) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	return s.storage.ListCustomers(ctx)
}

func (s *RecordService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.storage.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	s.queueSync(ctx, sheets.DomainCustomers, id, amqp.OpDelete)
	return nil
}

// queueSync records the operation in the sync queue and announces it over
// AMQP. Failures are logged but never fail the request: the record is
// already persisted locally and the worker sweeps pending entries anyway.
func (s *RecordService) queueSync(ctx context.Context, domain, recordID, op string) {
	queueID, err := s.storage.EnqueueSync(ctx, domain, recordID, op)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to enqueue sync entry",
			"domain", domain, "record_id", recordID, "error", err)
		return
	}

	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message",
			"domain", domain, "record_id", recordID)
		return
	}

	if err := s.amqpClient.PublishRecordSync(ctx, queueID, domain, recordID, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"domain", domain, "record_id", recordID, "error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
