package dre

import (
	"sort"

	"github.com/shopspring/decimal"

	"drefacil/internal/core"
)

// BucketTotal is one slice of the cost distribution chart.
type BucketTotal struct {
	Bucket CostBucket      `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
}

// RevenueSource is one revenue account's share of the period's credits.
type RevenueSource struct {
	AccountName string          `json:"accountName"`
	Total       decimal.Decimal `json:"total"`
	SharePct    float64         `json:"sharePct"`
}

// CostDistribution sums the company's debit entries in [start, end] per
// analytical cost bucket, classifying each entry by its account's name and
// declared category. Only debits participate: the distribution answers
// "where did money go", so credit reversals are not netted here. Buckets
// with no positive total are omitted; the result is ordered largest first.
func CostDistribution(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) []BucketTotal {
	byID := indexAccounts(accounts)
	totals := make(map[CostBucket]decimal.Decimal)

	for _, entry := range entries {
		if entry.CompanyID != companyID || entry.Type != core.Debit || !entry.Date.Within(start, end) {
			continue
		}
		account, ok := byID[entry.AccountID]
		if !ok {
			continue
		}
		bucket := Classify(account.Name, string(account.Category))
		totals[bucket] = totals[bucket].Add(entry.Amount)
	}

	result := make([]BucketTotal, 0, len(totals))
	for bucket, total := range totals {
		if total.IsPositive() {
			result = append(result, BucketTotal{Bucket: bucket, Total: total})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total.Equal(result[j].Total) {
			return result[i].Bucket < result[j].Bucket
		}
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

// RevenueSources totals the credits posted to each revenue account in
// [start, end] and computes every account's share of the period total.
// Accounts with no positive credit total are dropped; the result is
// ordered largest first.
func RevenueSources(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) []RevenueSource {
	byID := indexAccounts(accounts)
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, entry := range entries {
		if entry.CompanyID != companyID || entry.Type != core.Credit || !entry.Date.Within(start, end) {
			continue
		}
		account, ok := byID[entry.AccountID]
		if !ok {
			continue
		}
		category, ok := NormalizeCategory(string(account.Category))
		if !ok || !category.IsRevenue() {
			continue
		}
		if _, seen := totals[account.ID]; !seen {
			order = append(order, account.ID)
		}
		totals[account.ID] = totals[account.ID].Add(entry.Amount)
	}

	var grand decimal.Decimal
	for _, total := range totals {
		if total.IsPositive() {
			grand = grand.Add(total)
		}
	}

	result := make([]RevenueSource, 0, len(order))
	for _, id := range order {
		total := totals[id]
		if !total.IsPositive() {
			continue
		}
		source := RevenueSource{AccountName: byID[id].Name, Total: total}
		if grand.IsPositive() {
			source.SharePct = total.InexactFloat64() / grand.InexactFloat64() * 100
		}
		result = append(result, source)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total.Equal(result[j].Total) {
			return result[i].AccountName < result[j].AccountName
		}
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}
