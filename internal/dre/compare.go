package dre

// Comparison holds period-over-period deltas between two statements.
// Revenue and net income are relative percentage changes; the net margin
// delta is a plain difference in percentage points.
type Comparison struct {
	RevenueChangePct   float64 `json:"revenueChangePct"`
	NetIncomeChangePct float64 `json:"netIncomeChangePct"`
	NetMarginChangePts float64 `json:"netMarginChangePts"`
}

// Compare computes the variation from previous to current.
//
// RevenueChangePct is 0 when the previous period has no positive net
// revenue. NetIncomeChangePct divides by |previous| and is 0 when the
// previous net income is exactly zero; the sign of the previous value is
// otherwise not special-cased, so a swing from a loss to a profit reads
// as a large positive percentage.
func Compare(previous, current Statement) Comparison {
	var c Comparison

	if previous.NetRevenue.IsPositive() {
		c.RevenueChangePct = current.NetRevenue.Sub(previous.NetRevenue).
			InexactFloat64() / previous.NetRevenue.InexactFloat64() * 100
	}

	if !previous.NetIncome.IsZero() {
		c.NetIncomeChangePct = current.NetIncome.Sub(previous.NetIncome).
			InexactFloat64() / previous.NetIncome.Abs().InexactFloat64() * 100
	}

	c.NetMarginChangePts = current.NetMargin - previous.NetMargin
	return c
}
