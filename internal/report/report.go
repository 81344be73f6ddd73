// Package report renders computed statements for download, as an Excel
// workbook or a PDF.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"drefacil/internal/dre"
)

// line is one printable statement row. Subtotal rows are the values
// carried through the cascade and render bold.
type line struct {
	Label    string
	Value    decimal.Decimal
	Subtotal bool
}

func statementLines(s dre.Statement) []line {
	return []line{
		{Label: "Receita Bruta", Value: s.GrossRevenue},
		{Label: "(-) Deduções e Impostos", Value: s.Deductions},
		{Label: "Receita Líquida", Value: s.NetRevenue, Subtotal: true},
		{Label: "(-) Custo dos Produtos Vendidos", Value: s.CostOfGoods},
		{Label: "Lucro Bruto", Value: s.GrossProfit, Subtotal: true},
		{Label: "(-) Despesas Comerciais", Value: s.CommercialExpenses},
		{Label: "(-) Despesas Administrativas", Value: s.AdministrativeExpenses},
		{Label: "(-) Outras Despesas Operacionais", Value: s.OtherOperatingExpenses},
		{Label: "Resultado Operacional", Value: s.OperatingResult, Subtotal: true},
		{Label: "Receitas Financeiras", Value: s.FinancialIncome},
		{Label: "(-) Despesas Financeiras", Value: s.FinancialExpenses},
		{Label: "Resultado Antes dos Impostos", Value: s.ResultBeforeTax, Subtotal: true},
		{Label: "(-) Impostos sobre Lucro", Value: s.IncomeTax},
		{Label: "Lucro Líquido", Value: s.NetIncome, Subtotal: true},
	}
}

func marginRows(s dre.Statement) [][2]string {
	return [][2]string{
		{"Margem Bruta", fmt.Sprintf("%.2f%%", s.GrossMargin)},
		{"Margem Operacional", fmt.Sprintf("%.2f%%", s.OperatingMargin)},
		{"Margem Líquida", fmt.Sprintf("%.2f%%", s.NetMargin)},
	}
}

func periodTitle(s dre.Statement) string {
	return fmt.Sprintf("DRE %s a %s", s.StartDate, s.EndDate)
}
