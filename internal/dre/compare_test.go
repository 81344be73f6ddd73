package dre

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"drefacil/internal/core"
)

func statementWith(netRevenue, netIncome int64, netMargin float64) Statement {
	return Statement{
		CompanyID:  testCompany,
		NetRevenue: decimal.NewFromInt(netRevenue),
		NetIncome:  decimal.NewFromInt(netIncome),
		NetMargin:  netMargin,
	}
}

func TestCompare_Basic(t *testing.T) {
	previous := statementWith(1000, 100, 10)
	current := statementWith(1500, 300, 20)

	c := Compare(previous, current)

	assert.InDelta(t, 50.0, c.RevenueChangePct, 1e-9)
	assert.InDelta(t, 200.0, c.NetIncomeChangePct, 1e-9)
	assert.InDelta(t, 10.0, c.NetMarginChangePts, 1e-9)
}

func TestCompare_ZeroPreviousRevenue(t *testing.T) {
	c := Compare(statementWith(0, 0, 0), statementWith(1000, 500, 50))

	assert.Zero(t, c.RevenueChangePct)
	assert.Zero(t, c.NetIncomeChangePct)
	assert.InDelta(t, 50.0, c.NetMarginChangePts, 1e-9)
}

func TestCompare_LossToProfitSwing(t *testing.T) {
	// Previous net income negative: divides by |previous|, producing the
	// documented large-magnitude positive percentage.
	c := Compare(statementWith(1000, -200, -20), statementWith(1000, 400, 40))

	assert.InDelta(t, 300.0, c.NetIncomeChangePct, 1e-9)
	assert.InDelta(t, 60.0, c.NetMarginChangePts, 1e-9)
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	previous := Calculate(nil, nil, testCompany, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	current := Calculate(nil, nil, testCompany, core.NewDate(2024, 2, 1), core.NewDate(2024, 2, 29))
	previousCopy, currentCopy := previous, current

	Compare(previous, current)

	assert.Equal(t, previousCopy, previous)
	assert.Equal(t, currentCopy, current)
}
