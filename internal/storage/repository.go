// Package storage persists the chart of accounts and the ledger in SQLite.
// The statement engine never touches this package directly: services load
// snapshots here and hand plain slices to the engine.
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

	"github.com/shopspring/decimal"

	"drefacil/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

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

// DB exposes the underlying handle for metrics gauges.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

// --- accounts ---

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, company_id, code, name, category, type, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CompanyID, a.Code, a.Name, string(a.Category), string(a.Type), boolToInt(a.Active))
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "Account saved",
		"id", a.ID,
		"company_id", a.CompanyID,
		"name", a.Name,
		"category", string(a.Category))
	return nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context, companyID string) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, code, name, category, type, active
		FROM accounts
		WHERE company_id = ?
		ORDER BY code, name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		var category, accountType string
		var active int
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &category, &accountType, &active); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Category = core.Category(category)
		a.Type = core.AccountType(accountType)
		a.Active = active != 0
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id string) (core.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, code, name, category, type, active
		FROM accounts
		WHERE id = ?`, id)

	var a core.Account
	var category, accountType string
	var active int
	if err := row.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &category, &accountType, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Account{}, ErrNotFound
		}
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.Category = core.Category(category)
	a.Type = core.AccountType(accountType)
	a.Active = active != 0
	return a, nil
}

// DeactivateAccount flips the active flag off. Accounts are never hard
// deleted: historical entries keep referencing them.
func (r *SQLiteRepository) DeactivateAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- ledger entries ---

func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.LedgerEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, company_id, account_id, entry_date, description, amount, entry_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CompanyID, e.AccountID, e.Date.ISO(), e.Description, e.Amount.String(), string(e.Type))
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	slog.InfoContext(ctx, "Ledger entry saved",
		"id", e.ID,
		"company_id", e.CompanyID,
		"account_id", e.AccountID,
		"date", e.Date.ISO(),
		"amount", e.Amount.String(),
		"entry_type", string(e.Type))
	return nil
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, id string) (core.LedgerEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, account_id, entry_date, description, amount, entry_type
		FROM ledger_entries
		WHERE id = ? AND deleted_at IS NULL`, id)
	return scanEntry(row)
}

// ListEntries returns every live entry for a company, oldest first. The
// statement engine wants the whole ledger: it filters windows itself.
func (r *SQLiteRepository) ListEntries(ctx context.Context, companyID string) ([]core.LedgerEntry, error) {
	return r.queryEntries(ctx, `
		SELECT id, company_id, account_id, entry_date, description, amount, entry_type
		FROM ledger_entries
		WHERE company_id = ? AND deleted_at IS NULL
		ORDER BY entry_date, created_at`, companyID)
}

// ListEntriesBetween returns live entries inside [start, end], both ends
// inclusive, for list screens that page by period.
func (r *SQLiteRepository) ListEntriesBetween(ctx context.Context, companyID string, start, end core.Date) ([]core.LedgerEntry, error) {
	return r.queryEntries(ctx, `
		SELECT id, company_id, account_id, entry_date, description, amount, entry_type
		FROM ledger_entries
		WHERE company_id = ? AND deleted_at IS NULL AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date, created_at`, companyID, start.ISO(), end.ISO())
}

func (r *SQLiteRepository) SoftDeleteEntry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ledger_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("soft delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUnsyncedEntries returns live entries not yet mirrored to the backup
// spreadsheet, oldest first, capped at limit.
func (r *SQLiteRepository) ListUnsyncedEntries(ctx context.Context, limit int) ([]core.LedgerEntry, error) {
	return r.queryEntries(ctx, `
		SELECT id, company_id, account_id, entry_date, description, amount, entry_type
		FROM ledger_entries
		WHERE synced_at IS NULL AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT ?`, limit)
}

func (r *SQLiteRepository) MarkEntrySynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ledger_entries SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark entry synced: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) queryEntries(ctx context.Context, query string, args ...any) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.LedgerEntry, error) {
	var e core.LedgerEntry
	var date, amount, entryType string
	if err := row.Scan(&e.ID, &e.CompanyID, &e.AccountID, &date, &e.Description, &amount, &entryType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.LedgerEntry{}, ErrNotFound
		}
		return core.LedgerEntry{}, fmt.Errorf("scan entry: %w", err)
	}

	parsed, err := core.ParseDate(date)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("entry %s: bad date %q: %w", e.ID, date, err)
	}
	e.Date = parsed

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("entry %s: bad amount %q: %w", e.ID, amount, err)
	}
	e.Type = core.EntryType(entryType)
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
