// Package dre derives income statements (DRE) from in-memory snapshots of
// the chart of accounts and the ledger. Every function is a pure fold over
// its arguments: no state is kept between calls, nothing is cached, and
// identical inputs always produce identical outputs. Callers fetch the
// entries/accounts snapshot first and render or persist results afterwards;
// nothing in here blocks.
package dre

import (
	"github.com/shopspring/decimal"

	"drefacil/internal/core"
)

// Statement is the computed income statement for one company and period.
// It is derived on demand and never stored; two statements can be diffed
// (Compare) or sequenced (BuildSeries) without touching the inputs.
type Statement struct {
	CompanyID string    `json:"companyId"`
	Start     core.Date `json:"-"`
	End       core.Date `json:"-"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`

	GrossRevenue           decimal.Decimal `json:"grossRevenue"`
	Deductions             decimal.Decimal `json:"deductions"`
	NetRevenue             decimal.Decimal `json:"netRevenue"`
	CostOfGoods            decimal.Decimal `json:"costOfGoods"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	CommercialExpenses     decimal.Decimal `json:"commercialExpenses"`
	AdministrativeExpenses decimal.Decimal `json:"administrativeExpenses"`
	OtherOperatingExpenses decimal.Decimal `json:"otherOperatingExpenses"`
	OperatingExpenses      decimal.Decimal `json:"operatingExpenses"`
	OperatingResult        decimal.Decimal `json:"operatingResult"`
	FinancialIncome        decimal.Decimal `json:"financialIncome"`
	FinancialExpenses      decimal.Decimal `json:"financialExpenses"`
	FinancialResult        decimal.Decimal `json:"financialResult"`
	ResultBeforeTax        decimal.Decimal `json:"resultBeforeTax"`
	IncomeTax              decimal.Decimal `json:"incomeTax"`
	NetIncome              decimal.Decimal `json:"netIncome"`

	GrossMargin     float64 `json:"grossMargin"`
	OperatingMargin float64 `json:"operatingMargin"`
	NetMargin       float64 `json:"netMargin"`
}

// Calculate builds the full statement for companyID over the inclusive
// window [start, end]. An empty window yields an all-zero statement; a
// start after end can match nothing and degrades the same way. No line is
// clamped: any field may be negative.
func Calculate(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) Statement {
	s, _ := CalculateWithDiagnostics(entries, accounts, companyID, start, end)
	return s
}

// CalculateWithDiagnostics is Calculate plus the list of entries that were
// silently excluded because their account reference did not resolve.
func CalculateWithDiagnostics(entries []core.LedgerEntry, accounts []core.Account, companyID string, start, end core.Date) (Statement, Diagnostics) {
	totals, diag := AggregateByCategory(entries, accounts, companyID, start, end)

	s := Statement{
		CompanyID: companyID,
		Start:     start,
		End:       end,
		StartDate: start.ISO(),
		EndDate:   end.ISO(),
	}

	s.GrossRevenue = totals[core.CategoryGrossRevenue]
	s.Deductions = totals[core.CategoryDeductions]
	s.NetRevenue = s.GrossRevenue.Sub(s.Deductions)

	s.CostOfGoods = totals[core.CategoryCostOfGoods]
	s.GrossProfit = s.NetRevenue.Sub(s.CostOfGoods)

	s.CommercialExpenses = totals[core.CategoryCommercialExpenses]
	s.AdministrativeExpenses = totals[core.CategoryAdministrativeExpenses]
	s.OtherOperatingExpenses = totals[core.CategoryOtherOperatingExpenses]
	s.OperatingExpenses = s.CommercialExpenses.Add(s.AdministrativeExpenses).Add(s.OtherOperatingExpenses)
	s.OperatingResult = s.GrossProfit.Sub(s.OperatingExpenses)

	s.FinancialIncome = totals[core.CategoryFinancialIncome]
	s.FinancialExpenses = totals[core.CategoryFinancialExpenses]
	s.FinancialResult = s.FinancialIncome.Sub(s.FinancialExpenses)

	s.ResultBeforeTax = s.OperatingResult.Add(s.FinancialResult)
	s.IncomeTax = totals[core.CategoryIncomeTax]
	s.NetIncome = s.ResultBeforeTax.Sub(s.IncomeTax)

	s.GrossMargin = marginPercent(s.GrossProfit, s.NetRevenue)
	s.OperatingMargin = marginPercent(s.OperatingResult, s.NetRevenue)
	s.NetMargin = marginPercent(s.NetIncome, s.NetRevenue)

	return s, diag
}

// marginPercent is total by convention: 0 whenever the denominator is not
// strictly positive, so downstream formatting never sees NaN or Inf.
func marginPercent(numerator, netRevenue decimal.Decimal) float64 {
	if !netRevenue.IsPositive() {
		return 0
	}
	return numerator.InexactFloat64() / netRevenue.InexactFloat64() * 100
}
