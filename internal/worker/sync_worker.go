// Package worker mirrors ledger entries from SQLite into the backup
// spreadsheet, driven by broker messages with a periodic backlog sweep.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"drefacil/internal/amqp"
	applog "drefacil/internal/log"
	"drefacil/internal/metrics"
	"drefacil/internal/sheets"
	"drefacil/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.EntryWriter
	deleter   sheets.EntryDeleter
	metrics   *metrics.Metrics
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.EntryWriter, deleter sheets.EntryDeleter, m *metrics.Metrics, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		deleter:   deleter,
		metrics:   m,
		batchSize: batchSize,
	}
}

// HandleMessage processes one broker message. Returning an error makes
// the consumer requeue the delivery.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	switch msg.Op {
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg.ID)
	default:
		return w.syncEntry(ctx, msg.ID)
	}
}

func (w *SyncWorker) handleDelete(ctx context.Context, id string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No deleter configured, skipping backup deletion",
			applog.FieldEntryID, id)
		return nil
	}

	if err := w.deleter.Delete(ctx, id); err != nil {
		w.recordFailure()
		return fmt.Errorf("delete entry from backup: %w", err)
	}

	slog.InfoContext(ctx, "Deleted entry from backup", applog.FieldEntryID, id)
	return nil
}

// syncEntry loads the entry and its account and appends the backup row.
func (w *SyncWorker) syncEntry(ctx context.Context, id string) error {
	entry, err := w.storage.GetEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	account, err := w.storage.GetAccount(ctx, entry.AccountID)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}

	ref, err := w.writer.Append(ctx, entry, account)
	if err != nil {
		w.recordFailure()
		return fmt.Errorf("append entry to backup: %w", err)
	}

	if err := w.storage.MarkEntrySynced(ctx, id); err != nil {
		return fmt.Errorf("mark entry synced: %w", err)
	}

	if w.metrics != nil {
		w.metrics.EntrySynced()
	}
	slog.InfoContext(ctx, "Synced entry to backup",
		applog.FieldEntryID, id,
		applog.FieldSheetsRef, ref)
	return nil
}

// ProcessPending sweeps the unsynced backlog. This is the safety net for
// lost broker messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.ListUnsyncedEntries(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced entries: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing unsynced backlog", "count", len(pending))

	for _, entry := range pending {
		if err := w.syncEntry(ctx, entry.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry",
				applog.FieldEntryID, entry.ID,
				applog.FieldError, err)
		}
	}
	return nil
}

// StartupSyncCheck drains a larger backlog once at worker startup to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.ListUnsyncedEntries(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list unsynced entries for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No unsynced entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found unsynced entries on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, entry := range pending {
		if err := w.syncEntry(ctx, entry.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry during startup",
				applog.FieldEntryID, entry.ID,
				applog.FieldError, err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) recordFailure() {
	if w.metrics != nil {
		w.metrics.SyncFailed()
	}
}
