// Package services orchestrates the ledger store, the sync broker and the
// statement engine behind the HTTP surface.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"drefacil/internal/core"
	applog "drefacil/internal/log"
	"drefacil/internal/storage"
)

// EventPublisher is the broker side of entry writes. Satisfied by the
// AMQP client; nil means sync messages are skipped.
type EventPublisher interface {
	PublishEntrySync(ctx context.Context, id string, version int64) error
	PublishEntryDelete(ctx context.Context, id string) error
	Close() error
}

// LedgerService owns account and entry lifecycle. Writes land in SQLite
// first, then emit a broker message for the backup worker. A broker
// failure never fails the request, the worker catches up from the
// unsynced backlog.
type LedgerService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
}

func NewLedgerService(storage *storage.SQLiteRepository, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateAccount validates the account, assigns an id and stores it.
func (s *LedgerService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Active = true
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := s.storage.CreateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	return a, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context, companyID string) ([]core.Account, error) {
	return s.storage.ListAccounts(ctx, companyID)
}

// DeactivateAccount flips the account inactive. Its history stays
// computable, new entries should not target it.
func (s *LedgerService) DeactivateAccount(ctx context.Context, id string) error {
	return s.storage.DeactivateAccount(ctx, id)
}

// CreateEntry saves an entry locally and publishes a sync message.
func (s *LedgerService) CreateEntry(ctx context.Context, e core.LedgerEntry) (core.LedgerEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := e.Validate(); err != nil {
		return core.LedgerEntry{}, err
	}
	if err := s.storage.CreateEntry(ctx, e); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("save entry: %w", err)
	}

	if err := s.publishSync(ctx, e.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			applog.FieldEntryID, e.ID,
			applog.FieldError, err)
		// Entry is saved locally, the worker backlog covers it.
	}

	return e, nil
}

func (s *LedgerService) GetEntry(ctx context.Context, id string) (core.LedgerEntry, error) {
	return s.storage.GetEntry(ctx, id)
}

func (s *LedgerService) ListEntries(ctx context.Context, companyID string) ([]core.LedgerEntry, error) {
	return s.storage.ListEntries(ctx, companyID)
}

// DeleteEntry soft deletes locally and publishes a delete message.
func (s *LedgerService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.storage.SoftDeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("soft delete entry: %w", err)
	}

	if err := s.publishDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			applog.FieldEntryID, id,
			applog.FieldError, err)
	}

	return nil
}

// LoadWindow fetches the inputs the statement engine needs for one
// company and period. Accounts are the full chart, entries are filtered
// to the window in SQL.
func (s *LedgerService) LoadWindow(ctx context.Context, companyID string, start, end core.Date) ([]core.Account, []core.LedgerEntry, error) {
	accounts, err := s.storage.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}
	entries, err := s.storage.ListEntriesBetween(ctx, companyID, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("list entries: %w", err)
	}
	return accounts, entries, nil
}

func (s *LedgerService) publishSync(ctx context.Context, id string, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Broker not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishEntrySync(ctx, id, version)
}

func (s *LedgerService) publishDelete(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Broker not available, skipping delete message")
		return nil
	}
	return s.publisher.PublishEntryDelete(ctx, id)
}

// Close closes both storage and broker connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("broker: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
