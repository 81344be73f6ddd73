package sheets

import (
	"context"

	"drefacil/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryWriter appends one ledger entry as a backup row. The account is
	// passed alongside because the sheet stores its name and category, not
	// the internal account id.
	EntryWriter interface {
		Append(ctx context.Context, e core.LedgerEntry, a core.Account) (rowRef string, err error)
	}

	// EntryDeleter clears the backup row of a deleted ledger entry.
	EntryDeleter interface {
		Delete(ctx context.Context, entryID string) error
	}
)
