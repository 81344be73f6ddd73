package worker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"drefacil/internal/amqp"
	"drefacil/internal/core"
	"drefacil/internal/sheets/memory"
	"drefacil/internal/storage"
)

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedEntry(t *testing.T, repo *storage.SQLiteRepository, id string) core.LedgerEntry {
	t.Helper()
	ctx := context.Background()

	account := core.Account{
		ID:        "A1",
		CompanyID: "C1",
		Name:      "Receita de Bilheteria",
		Category:  core.CategoryGrossRevenue,
		Type:      core.AccountAnalytic,
		Active:    true,
	}
	if _, err := repo.GetAccount(ctx, account.ID); err != nil {
		require.NoError(t, repo.CreateAccount(ctx, account))
	}

	entry := core.LedgerEntry{
		ID:          id,
		CompanyID:   "C1",
		AccountID:   account.ID,
		Date:        core.NewDate(2025, 3, 10),
		Description: "Venda de ingressos",
		Amount:      decimal.NewFromInt(150),
		Type:        core.Credit,
	}
	require.NoError(t, repo.CreateEntry(ctx, entry))
	return entry
}

func TestHandleMessageSyncsEntry(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, store, nil, 10)
	entry := seedEntry(t, repo, "e1")

	msg := amqp.NewEntrySyncMessage(entry.ID, 1)
	require.NoError(t, w.HandleMessage(context.Background(), msg))
	require.True(t, store.Has(entry.ID))

	// The entry must drop out of the unsynced backlog.
	pending, err := repo.ListUnsyncedEntries(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestHandleMessageUnknownEntry(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, store, nil, 10)

	msg := amqp.NewEntrySyncMessage("missing", 1)
	require.Error(t, w.HandleMessage(context.Background(), msg))
}

func TestHandleDeleteMessage(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, store, nil, 10)
	entry := seedEntry(t, repo, "e1")

	require.NoError(t, w.HandleMessage(context.Background(), amqp.NewEntrySyncMessage(entry.ID, 1)))
	require.NoError(t, w.HandleMessage(context.Background(), amqp.NewEntryDeleteMessage(entry.ID)))
	require.False(t, store.Has(entry.ID))
}

func TestHandleDeleteWithoutDeleterIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, nil, nil, 10)

	require.NoError(t, w.HandleMessage(context.Background(), amqp.NewEntryDeleteMessage("whatever")))
}

func TestStartupSyncCheckDrainsBacklog(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, store, nil, 10)

	seedEntry(t, repo, "e1")
	seedEntry(t, repo, "e2")
	seedEntry(t, repo, "e3")

	require.NoError(t, w.StartupSyncCheck(context.Background()))
	require.Equal(t, 3, store.Len())

	pending, err := repo.ListUnsyncedEntries(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestProcessPendingRespectsBatchSize(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	w := NewSyncWorker(repo, store, store, nil, 2)

	seedEntry(t, repo, "e1")
	seedEntry(t, repo, "e2")
	seedEntry(t, repo, "e3")

	require.NoError(t, w.ProcessPending(context.Background()))
	require.Equal(t, 2, store.Len())
}
