package dre

import (
	"sort"

	"github.com/shopspring/decimal"

	"drefacil/internal/core"
)

// Diagnostics reports entries that were silently excluded from an
// aggregation because their account reference did not resolve or the
// account's category does not roll into the statement. The totals are
// unaffected; callers that care about data drift can reconcile the skip
// count against the entry count.
type Diagnostics struct {
	SkippedEntryIDs []string
}

// Skipped returns the number of excluded entries.
func (d Diagnostics) Skipped() int {
	return len(d.SkippedEntryIDs)
}

// AccountTotal is one row of the account-level cost breakdown.
type AccountTotal struct {
	AccountName string          `json:"accountName"`
	Category    core.Category   `json:"category"`
	Total       decimal.Decimal `json:"total"`
}

// AggregateByCategory filters entries to companyID and the inclusive
// window [start, end] and sums signed amounts per statement category.
//
// Sign convention: revenue-like categories (Receita Bruta, Receitas
// Financeiras) count credits as positive and debits as negative; every
// other category counts debits as positive and credits as negative. A
// credit posted against an expense account therefore nets the category
// down instead of needing reversal handling.
//
// Entries whose account id resolves to no known account are skipped, not
// failed; they are reported through the returned Diagnostics.
func AggregateByCategory(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) (map[core.Category]decimal.Decimal, Diagnostics) {
	byID := indexAccounts(accounts)
	totals := make(map[core.Category]decimal.Decimal)
	var diag Diagnostics

	for _, entry := range entries {
		if entry.CompanyID != companyID || !entry.Date.Within(start, end) {
			continue
		}
		account, ok := byID[entry.AccountID]
		if !ok {
			diag.SkippedEntryIDs = append(diag.SkippedEntryIDs, entry.ID)
			continue
		}
		category, ok := NormalizeCategory(string(account.Category))
		if !ok {
			diag.SkippedEntryIDs = append(diag.SkippedEntryIDs, entry.ID)
			continue
		}
		totals[category] = totals[category].Add(entry.Signed(category))
	}

	return totals, diag
}

// AggregateByAccount is the drill-down variant: same filtering and sign
// convention, grouped by individual account rather than category. Only
// non-revenue accounts participate, and accounts whose net total is zero
// or negative are dropped; the result feeds "top cost contributor"
// views, not a general ledger report.
func AggregateByAccount(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) []AccountTotal {
	byID := indexAccounts(accounts)
	totals := make(map[string]*AccountTotal)
	order := make([]string, 0)

	for _, entry := range entries {
		if entry.CompanyID != companyID || !entry.Date.Within(start, end) {
			continue
		}
		account, ok := byID[entry.AccountID]
		if !ok {
			continue
		}
		category, ok := NormalizeCategory(string(account.Category))
		if !ok || category.IsRevenue() {
			continue
		}
		row, ok := totals[account.ID]
		if !ok {
			row = &AccountTotal{AccountName: account.Name, Category: category}
			totals[account.ID] = row
			order = append(order, account.ID)
		}
		row.Total = row.Total.Add(entry.Signed(category))
	}

	result := make([]AccountTotal, 0, len(order))
	for _, id := range order {
		if totals[id].Total.IsPositive() {
			result = append(result, *totals[id])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

func indexAccounts(accounts []core.Account) map[string]core.Account {
	byID := make(map[string]core.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID
}
