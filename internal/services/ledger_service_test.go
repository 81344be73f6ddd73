package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"drefacil/internal/core"
	"drefacil/internal/storage"
)

type fakePublisher struct {
	synced  []string
	deleted []string
	fail    bool
	closed  bool
}

func (f *fakePublisher) PublishEntrySync(_ context.Context, id string, _ int64) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakePublisher) PublishEntryDelete(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func newTestService(t *testing.T, publisher EventPublisher) *LedgerService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewLedgerService(repo, publisher)
}

func seedAccount(t *testing.T, svc *LedgerService, name string, category core.Category) core.Account {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), core.Account{
		CompanyID: "C1",
		Name:      name,
		Category:  category,
		Type:      core.AccountAnalytic,
	})
	require.NoError(t, err)
	return account
}

func TestCreateEntryPublishesSyncMessage(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newTestService(t, publisher)
	account := seedAccount(t, svc, "Receita de Bilheteria", core.CategoryGrossRevenue)

	entry, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		CompanyID:   "C1",
		AccountID:   account.ID,
		Date:        core.NewDate(2025, 3, 10),
		Description: "Venda de ingressos",
		Amount:      decimal.NewFromInt(150),
		Type:        core.Credit,
	})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.Equal(t, []string{entry.ID}, publisher.synced)

	stored, err := svc.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	require.True(t, stored.Amount.Equal(decimal.NewFromInt(150)))
}

func TestCreateEntryRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, &fakePublisher{})

	_, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		CompanyID:   "C1",
		AccountID:   "A1",
		Date:        core.NewDate(2025, 3, 10),
		Description: "",
		Amount:      decimal.NewFromInt(10),
		Type:        core.Debit,
	})
	require.ErrorIs(t, err, core.ErrEmptyDescription)
}

func TestBrokerFailureDoesNotFailWrite(t *testing.T) {
	publisher := &fakePublisher{fail: true}
	svc := newTestService(t, publisher)
	account := seedAccount(t, svc, "Aluguel do galpão", core.CategoryAdministrativeExpenses)

	entry, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		CompanyID:   "C1",
		AccountID:   account.ID,
		Date:        core.NewDate(2025, 4, 1),
		Description: "Aluguel abril",
		Amount:      decimal.NewFromInt(2000),
		Type:        core.Debit,
	})
	require.NoError(t, err)

	// Entry must be readable even though the broker rejected the message.
	_, err = svc.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
}

func TestDeleteEntryPublishesDeleteMessage(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newTestService(t, publisher)
	account := seedAccount(t, svc, "Receita de Bar", core.CategoryGrossRevenue)

	entry, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		CompanyID:   "C1",
		AccountID:   account.ID,
		Date:        core.NewDate(2025, 5, 2),
		Description: "Consumo no bar",
		Amount:      decimal.NewFromInt(80),
		Type:        core.Credit,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(context.Background(), entry.ID))
	require.Equal(t, []string{entry.ID}, publisher.deleted)

	_, err = svc.GetEntry(context.Background(), entry.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeactivateAccountKeepsHistoryComputable(t *testing.T) {
	svc := newTestService(t, &fakePublisher{})
	account := seedAccount(t, svc, "Receita de Bilheteria", core.CategoryGrossRevenue)

	_, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		CompanyID:   "C1",
		AccountID:   account.ID,
		Date:        core.NewDate(2025, 1, 15),
		Description: "Show de janeiro",
		Amount:      decimal.NewFromInt(500),
		Type:        core.Credit,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateAccount(context.Background(), account.ID))

	accounts, entries, err := svc.LoadWindow(context.Background(), "C1",
		core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.False(t, accounts[0].Active)
	require.Len(t, entries, 1)
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := &LedgerService{}
	require.NoError(t, svc.Close())
}
