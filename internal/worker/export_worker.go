package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inventory/internal/amqp"
	"inventory/internal/sheets"
	"inventory/internal/storage"
)

// ExportWorker pushes queued records from SQLite to the configured sheet
// writer. AMQP messages drive the normal path; the pending sweep recovers
// entries whose messages were lost.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.RecordWriter
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, writer sheets.RecordWriter, batchSize int) *ExportWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &ExportWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"queue_id", msg.QueueID,
		"domain", msg.Domain,
		"record_id", msg.RecordID,
		"op", msg.Op)

	return w.export(ctx, storage.PendingSync{
		ID:       msg.QueueID,
		Domain:   msg.Domain,
		RecordID: msg.RecordID,
		Op:       msg.Op,
	})
}

// StartupSyncCheck drains pending queue entries left over from missed AMQP
// messages or worker downtime. Runs with a larger batch than the periodic
// sweep.
func (w *ExportWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending sync entries for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, entry := range pending {
		if err := w.export(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to export record during startup",
				"queue_id", entry.ID, "domain", entry.Domain, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

// ProcessPending exports one batch of pending queue entries. This is the
// backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending sync entries: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, entry := range pending {
		if err := w.export(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to export record",
				"queue_id", entry.ID, "domain", entry.Domain, "error", err)
		}
	}

	return nil
}

func (w *ExportWorker) export(ctx context.Context, entry storage.PendingSync) error {
	// Deletes have nothing to append; the sheet keeps its historical rows
	// and the queue entry is simply settled.
	if entry.Op == amqp.OpDelete {
		if err := w.storage.MarkSynced(ctx, entry.ID); err != nil {
			return fmt.Errorf("mark delete entry synced: %w", err)
		}
		slog.InfoContext(ctx, "Settled delete entry",
			"queue_id", entry.ID, "domain", entry.Domain, "record_id", entry.RecordID)
		return nil
	}

	row, err := w.rowFor(ctx, entry.Domain, entry.RecordID)
	if err != nil {
		// A record deleted before its create entry was exported is gone for
		// good; settle the entry instead of retrying forever.
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Record no longer exists, settling entry",
				"queue_id", entry.ID, "domain", entry.Domain, "record_id", entry.RecordID)
			return w.storage.MarkSynced(ctx, entry.ID)
		}
		if markErr := w.storage.MarkSyncError(ctx, entry.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"queue_id", entry.ID, "error", markErr)
		}
		return err
	}

	ref, err := w.writer.Append(ctx, row)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, entry.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"queue_id", entry.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, entry.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"queue_id", entry.ID, "error", err)
		// Don't return an error here, the export actually worked.
	}

	slog.InfoContext(ctx, "Successfully exported record",
		"queue_id", entry.ID,
		"domain", entry.Domain,
		"record_id", entry.RecordID,
		"sheets_ref", ref)

	return nil
}

func (w *ExportWorker) rowFor(ctx context.Context, domain, recordID string) (sheets.Row, error) {
	switch domain {
	case sheets.DomainProducts:
		p, err := w.storage.GetProduct(ctx, recordID)
		if err != nil {
			return sheets.Row{}, fmt.Errorf("get product %s: %w", recordID, err)
		}
		return sheets.RowForProduct(p), nil
	case sheets.DomainExpenses:
		e, err := w.storage.GetExpense(ctx, recordID)
		if err != nil {
			return sheets.Row{}, fmt.Errorf("get expense %s: %w", recordID, err)
		}
		return sheets.RowForExpense(e), nil
	case sheets.DomainSalaries:
		s, err := w.storage.GetSalary(ctx, recordID)
		if err != nil {
			return sheets.Row{}, fmt.Errorf("get salary %s: %w", recordID, err)
		}
		return sheets.RowForSalary(s), nil
	case sheets.DomainCustomers:
		c, err := w.storage.GetCustomer(ctx, recordID)
		if err != nil {
			return sheets.Row{}, fmt.Errorf("get customer %s: %w", recordID, err)
		}
		return sheets.RowForCustomer(c), nil
	default:
		return sheets.Row{}, fmt.Errorf("unknown domain: %s", domain)
	}
}
