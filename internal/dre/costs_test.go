package dre

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drefacil/internal/core"
)

func TestCostDistributionGroupsByBucket(t *testing.T) {
	accounts := []core.Account{
		expenseAccount("a1", "Aluguel do galpão", core.CategoryAdministrativeExpenses),
		expenseAccount("a2", "Energia elétrica", core.CategoryAdministrativeExpenses),
		expenseAccount("a3", "Cachê da banda", core.CategoryCostOfGoods),
		revenueAccount("a4", "Receita de Bilheteria"),
	}
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)
	entries := []core.LedgerEntry{
		entry("e1", "a1", core.NewDate(2025, 3, 1), "400", core.Debit),
		entry("e2", "a2", core.NewDate(2025, 3, 2), "250", core.Debit),
		entry("e3", "a3", core.NewDate(2025, 3, 3), "900", core.Debit),
		// Credits never show up in the distribution, even on expense accounts.
		entry("e4", "a1", core.NewDate(2025, 3, 4), "50", core.Credit),
		entry("e5", "a4", core.NewDate(2025, 3, 5), "2000", core.Credit),
	}

	buckets := CostDistribution(entries, accounts, testCompany, start, end)
	require.Len(t, buckets, 2)

	// Rent and energy both land in the infrastructure bucket.
	assert.Equal(t, BucketBandsOrArtists, buckets[0].Bucket)
	assert.True(t, buckets[0].Total.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, BucketRentOrInfrastructure, buckets[1].Bucket)
	assert.True(t, buckets[1].Total.Equal(decimal.NewFromInt(650)))
}

func TestCostDistributionSkipsOtherCompanies(t *testing.T) {
	accounts := []core.Account{
		expenseAccount("a1", "Aluguel do galpão", core.CategoryAdministrativeExpenses),
	}
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)
	entries := []core.LedgerEntry{
		entry("e1", "a1", core.NewDate(2025, 3, 1), "400", core.Debit),
	}
	entries[0].CompanyID = "other"

	assert.Empty(t, CostDistribution(entries, accounts, testCompany, start, end))
}

func TestRevenueSourcesShares(t *testing.T) {
	accounts := []core.Account{
		revenueAccount("a1", "Receita de Bilheteria"),
		revenueAccount("a2", "Receita de Bar"),
		expenseAccount("a3", "Aluguel do galpão", core.CategoryAdministrativeExpenses),
	}
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)
	entries := []core.LedgerEntry{
		entry("e1", "a1", core.NewDate(2025, 3, 1), "750", core.Credit),
		entry("e2", "a2", core.NewDate(2025, 3, 2), "250", core.Credit),
		// Expense credits are not revenue.
		entry("e3", "a3", core.NewDate(2025, 3, 3), "100", core.Credit),
	}

	sources := RevenueSources(entries, accounts, testCompany, start, end)
	require.Len(t, sources, 2)

	assert.Equal(t, "Receita de Bilheteria", sources[0].AccountName)
	assert.InDelta(t, 75.0, sources[0].SharePct, 1e-9)
	assert.Equal(t, "Receita de Bar", sources[1].AccountName)
	assert.InDelta(t, 25.0, sources[1].SharePct, 1e-9)
}

func TestRevenueSourcesOrdersLargestFirst(t *testing.T) {
	accounts := []core.Account{
		revenueAccount("a1", "Receita de Bar"),
		revenueAccount("a2", "Receita de Bilheteria"),
		revenueAccount("a3", "Receita de Chapelaria"),
	}
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)
	// Posted smallest first so insertion order and size order disagree.
	entries := []core.LedgerEntry{
		entry("e1", "a1", core.NewDate(2025, 3, 1), "120", core.Credit),
		entry("e2", "a2", core.NewDate(2025, 3, 2), "880", core.Credit),
		entry("e3", "a3", core.NewDate(2025, 3, 3), "120", core.Credit),
	}

	sources := RevenueSources(entries, accounts, testCompany, start, end)
	require.Len(t, sources, 3)

	assert.Equal(t, "Receita de Bilheteria", sources[0].AccountName)
	// Ties fall back to the account name.
	assert.Equal(t, "Receita de Bar", sources[1].AccountName)
	assert.Equal(t, "Receita de Chapelaria", sources[2].AccountName)
}

func TestRevenueSourcesDropsNettedAccounts(t *testing.T) {
	accounts := []core.Account{
		revenueAccount("a1", "Receita de Bilheteria"),
	}
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)
	entries := []core.LedgerEntry{
		entry("e1", "a1", core.NewDate(2025, 3, 1), "-300", core.Credit),
	}

	assert.Empty(t, RevenueSources(entries, accounts, testCompany, start, end))
}
