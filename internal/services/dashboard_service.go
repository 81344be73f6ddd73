package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"drefacil/internal/core"
	"drefacil/internal/dre"
)

// Dashboard is the aggregate payload behind the landing screen: the
// running year against the previous one, a monthly history, and where
// the money comes from and goes.
type Dashboard struct {
	CompanyID    string              `json:"companyId"`
	CurrentYear  dre.Statement       `json:"currentYear"`
	PreviousYear dre.Statement       `json:"previousYear"`
	Comparison   dre.Comparison      `json:"comparison"`
	History      []dre.Statement     `json:"history"`
	Costs        []dre.BucketTotal   `json:"costs"`
	Revenue      []dre.RevenueSource `json:"revenue"`
}

// DashboardService assembles the dashboard from the ledger store.
type DashboardService struct {
	ledger *LedgerService
}

func NewDashboardService(ledger *LedgerService) *DashboardService {
	return &DashboardService{ledger: ledger}
}

// Build computes the dashboard for the year containing ref. The three
// reads run concurrently, the statement math itself is cheap.
func (s *DashboardService) Build(ctx context.Context, companyID string, ref core.Date) (Dashboard, error) {
	year := ref.Year()
	curStart := core.NewDate(year, 1, 1)
	curEnd := core.NewDate(year, 12, 31)
	prevStart := core.NewDate(year-1, 1, 1)
	prevEnd := core.NewDate(year-1, 12, 31)

	var (
		accounts    []core.Account
		curEntries  []core.LedgerEntry
		prevEntries []core.LedgerEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.ledger.ListAccounts(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		curEntries, err = s.ledger.storage.ListEntriesBetween(gctx, companyID, curStart, curEnd)
		return err
	})
	g.Go(func() error {
		var err error
		prevEntries, err = s.ledger.storage.ListEntriesBetween(gctx, companyID, prevStart, prevEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("load dashboard inputs: %w", err)
	}

	current := dre.Calculate(curEntries, accounts, companyID, curStart, curEnd)
	previous := dre.Calculate(prevEntries, accounts, companyID, prevStart, prevEnd)

	return Dashboard{
		CompanyID:    companyID,
		CurrentYear:  current,
		PreviousYear: previous,
		Comparison:   dre.Compare(previous, current),
		History: dre.BuildSeries(curEntries, accounts, companyID, curStart, curEnd, dre.SeriesOptions{
			Granularity: dre.Monthly,
		}),
		Costs:   dre.CostDistribution(curEntries, accounts, companyID, curStart, curEnd),
		Revenue: dre.RevenueSources(curEntries, accounts, companyID, curStart, curEnd),
	}, nil
}
