package dre

import (
	"strconv"
	"strings"

	"drefacil/internal/core"
)

// topLevelCategories maps the leading number of a hierarchical chart code
// ("4.2 Pessoal" -> 4) to a statement category. Charts imported from the
// legacy numbering scheme store the code in the category field instead of
// one of the nine literals. Level 11 (patrimônio) has no statement line.
var topLevelCategories = map[int]core.Category{
	1:  core.CategoryGrossRevenue,
	2:  core.CategoryDeductions,
	3:  core.CategoryCostOfGoods,
	4:  core.CategoryAdministrativeExpenses,
	5:  core.CategoryAdministrativeExpenses,
	6:  core.CategoryOtherOperatingExpenses,
	7:  core.CategoryCommercialExpenses,
	8:  core.CategoryFinancialIncome,
	9:  core.CategoryFinancialExpenses,
	10: core.CategoryIncomeTax,
}

// NormalizeCategory resolves a raw account category string to a statement
// category. The nine literal category names pass through unchanged; a
// numeric chart-code prefix is mapped through the legacy numbering table.
// Anything else does not roll into the statement and returns false.
func NormalizeCategory(raw string) (core.Category, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", false
	}
	if c := core.Category(cleaned); c.Valid() {
		return c, true
	}

	digits := leadingDigits(cleaned)
	if digits == "" {
		return "", false
	}
	top, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	c, ok := topLevelCategories[top]
	return c, ok
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
