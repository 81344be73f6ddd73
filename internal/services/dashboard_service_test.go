package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"drefacil/internal/core"
)

func TestDashboardBuild(t *testing.T) {
	svc := newTestService(t, &fakePublisher{})
	revenue := seedAccount(t, svc, "Receita de Bilheteria", core.CategoryGrossRevenue)
	rent := seedAccount(t, svc, "Aluguel do espaço", core.CategoryAdministrativeExpenses)

	ctx := context.Background()
	post := func(accountID string, date core.Date, desc string, amount int64, typ core.EntryType) {
		t.Helper()
		_, err := svc.CreateEntry(ctx, core.LedgerEntry{
			CompanyID:   "C1",
			AccountID:   accountID,
			Date:        date,
			Description: desc,
			Amount:      decimal.NewFromInt(amount),
			Type:        typ,
		})
		require.NoError(t, err)
	}

	// Previous year: 1000 revenue, 400 rent.
	post(revenue.ID, core.NewDate(2024, 6, 1), "Temporada 2024", 1000, core.Credit)
	post(rent.ID, core.NewDate(2024, 6, 5), "Aluguel junho 2024", 400, core.Debit)
	// Current year: 1500 revenue, 500 rent.
	post(revenue.ID, core.NewDate(2025, 3, 10), "Temporada 2025", 1500, core.Credit)
	post(rent.ID, core.NewDate(2025, 3, 12), "Aluguel março 2025", 500, core.Debit)

	dashboards := NewDashboardService(svc)
	dashboard, err := dashboards.Build(ctx, "C1", core.NewDate(2025, 8, 30))
	require.NoError(t, err)

	require.True(t, dashboard.CurrentYear.NetIncome.Equal(decimal.NewFromInt(1000)))
	require.True(t, dashboard.PreviousYear.NetIncome.Equal(decimal.NewFromInt(600)))
	require.InDelta(t, 50.0, dashboard.Comparison.RevenueChangePct, 1e-9)

	require.Len(t, dashboard.History, 12)
	march := dashboard.History[2]
	require.True(t, march.NetIncome.Equal(decimal.NewFromInt(1000)))

	require.Len(t, dashboard.Revenue, 1)
	require.Equal(t, "Receita de Bilheteria", dashboard.Revenue[0].AccountName)
	require.Len(t, dashboard.Costs, 1)
}

func TestDashboardBuildEmptyCompany(t *testing.T) {
	svc := newTestService(t, &fakePublisher{})
	dashboards := NewDashboardService(svc)

	dashboard, err := dashboards.Build(context.Background(), "ghost", core.NewDate(2025, 8, 30))
	require.NoError(t, err)
	require.True(t, dashboard.CurrentYear.NetIncome.IsZero())
	require.Len(t, dashboard.History, 12)
	require.Empty(t, dashboard.Costs)
}
