package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the nine fixed statement lines an account rolls into.
// The literal values are the legacy chart-of-accounts strings and must not
// be changed: stored accounts reference them verbatim.
type Category string

const (
	CategoryGrossRevenue           Category = "Receita Bruta"
	CategoryDeductions             Category = "Deduções e Impostos"
	CategoryCostOfGoods            Category = "Custo dos Produtos Vendidos"
	CategoryCommercialExpenses     Category = "Despesas Comerciais"
	CategoryAdministrativeExpenses Category = "Despesas Administrativas"
	CategoryOtherOperatingExpenses Category = "Outras Despesas Operacionais"
	CategoryFinancialIncome        Category = "Receitas Financeiras"
	CategoryFinancialExpenses      Category = "Despesas Financeiras"
	CategoryIncomeTax              Category = "Impostos sobre Lucro"
)

// Categories lists every statement category in presentation order.
var Categories = []Category{
	CategoryGrossRevenue,
	CategoryDeductions,
	CategoryCostOfGoods,
	CategoryCommercialExpenses,
	CategoryAdministrativeExpenses,
	CategoryOtherOperatingExpenses,
	CategoryFinancialIncome,
	CategoryFinancialExpenses,
	CategoryIncomeTax,
}

// IsRevenue reports whether credits increase the category total.
// Every other category is expense-like: debits increase it.
func (c Category) IsRevenue() bool {
	return c == CategoryGrossRevenue || c == CategoryFinancialIncome
}

// Valid reports whether c is one of the nine statement categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EntryType discriminates the two sides of a posting. The literal values
// are part of the wire contract with the API and the sheets backup.
type EntryType string

const (
	Debit  EntryType = "Debit"
	Credit EntryType = "Credit"
)

// AccountType tells postable accounts apart from grouping ones. The
// aggregation engine sums both kinds alike; the distinction only matters
// to entry forms upstream.
type AccountType string

const (
	AccountAnalytic  AccountType = "Analytic"
	AccountSynthetic AccountType = "Synthetic"
)

type (
	// Date is a calendar day. The time-of-day portion is always midnight UTC.
	Date struct {
		time.Time
	}

	// Account is one chart-of-accounts row. Read-only to the statement
	// engine; managed by the account screens upstream.
	Account struct {
		ID        string
		CompanyID string
		Code      string // hierarchical display code, e.g. "3.1.1.01"; never parsed
		Name      string
		Category  Category
		Type      AccountType
		Active    bool
	}

	// LedgerEntry is a single posted transaction. Immutable once computed
	// into a statement: statements are always derived fresh.
	LedgerEntry struct {
		ID          string
		CompanyID   string
		AccountID   string
		Date        Date
		Description string
		Amount      decimal.Decimal
		Type        EntryType
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidEntryType = errors.New("invalid entry type")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyCompany     = errors.New("empty company id")
	ErrEmptyAccount     = errors.New("empty account reference")
	ErrEmptyName        = errors.New("empty account name")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Within reports whether d falls inside [start, end], both ends inclusive.
func (d Date) Within(start, end Date) bool {
	return !d.Time.Before(start.Time) && !d.Time.After(end.Time)
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.CompanyID) == "" {
		return ErrEmptyCompany
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 200 {
		return errors.New("account name too long (max 200 characters)")
	}
	if !a.Category.Valid() {
		return ErrInvalidCategory
	}
	switch a.Type {
	case AccountAnalytic, AccountSynthetic:
	default:
		return errors.New("invalid account type")
	}
	return nil
}

func (e LedgerEntry) Validate() error {
	if strings.TrimSpace(e.CompanyID) == "" {
		return ErrEmptyCompany
	}
	if strings.TrimSpace(e.AccountID) == "" {
		return ErrEmptyAccount
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	switch e.Type {
	case Debit, Credit:
	default:
		return ErrInvalidEntryType
	}
	// Amount is deliberately not range-checked: the ledger format allows a
	// negative magnitude, which behaves as the opposite entry type when
	// aggregated. See dre.AggregateByCategory.
	return nil
}

// Signed returns the entry's contribution to its account's category total:
// +Amount when the entry side matches the category's natural side,
// -Amount otherwise.
func (e LedgerEntry) Signed(category Category) decimal.Decimal {
	natural := Debit
	if category.IsRevenue() {
		natural = Credit
	}
	if e.Type == natural {
		return e.Amount
	}
	return e.Amount.Neg()
}
