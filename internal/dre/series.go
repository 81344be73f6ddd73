package dre

import (
	"time"

	"drefacil/internal/core"
)

// Granularity selects the sub-period size of a historical series.
type Granularity string

const (
	Monthly   Granularity = "month"
	Quarterly Granularity = "quarter"
	Yearly    Granularity = "year"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// SeriesOptions controls BuildSeries.
type SeriesOptions struct {
	Granularity Granularity
	// ActiveOnly drops sub-periods with no matching entries instead of
	// emitting all-zero statements. The dashboard's adaptive month list
	// uses this; trend charts want the zero periods kept.
	ActiveOnly bool
}

// BuildSeries partitions [windowStart, windowEnd] into consecutive,
// non-overlapping, calendar-aligned sub-periods (months run first-of-month
// to last-of-month, quarters align to January, years are calendar years),
// clips the first and last sub-period to the window bounds, and computes
// one statement per sub-period in chronological order.
func BuildSeries(entries []core.LedgerEntry, accounts []core.Account, companyID string, windowStart, windowEnd core.Date, opts SeriesOptions) []Statement {
	if windowStart.Time.After(windowEnd.Time) {
		return nil
	}

	granularity := opts.Granularity
	if !granularity.Valid() {
		granularity = Monthly
	}

	// Non-nil even when ActiveOnly drops every sub-period: nil is reserved
	// for the inverted-window case above.
	series := []Statement{}
	cursor := windowStart
	for !cursor.Time.After(windowEnd.Time) {
		periodEnd := alignedPeriodEnd(cursor, granularity)
		if periodEnd.Time.After(windowEnd.Time) {
			periodEnd = windowEnd
		}

		if !opts.ActiveOnly || hasActivity(entries, companyID, cursor, periodEnd) {
			series = append(series, Calculate(entries, accounts, companyID, cursor, periodEnd))
		}

		cursor = core.Date{Time: periodEnd.Time.AddDate(0, 0, 1)}
	}
	return series
}

// alignedPeriodEnd returns the last day of the calendar period containing d.
func alignedPeriodEnd(d core.Date, g Granularity) core.Date {
	year, month, _ := d.Time.Date()
	switch g {
	case Yearly:
		return core.NewDate(year, 12, 31)
	case Quarterly:
		quarter := (int(month) - 1) / 3
		// day 0 of the month after the quarter = last day of the quarter
		return core.Date{Time: time.Date(year, time.Month(quarter*3+4), 0, 0, 0, 0, 0, time.UTC)}
	default:
		return core.Date{Time: time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)}
	}
}

func hasActivity(entries []core.LedgerEntry, companyID string, start, end core.Date) bool {
	for _, entry := range entries {
		if entry.CompanyID == companyID && entry.Date.Within(start, end) {
			return true
		}
	}
	return false
}
