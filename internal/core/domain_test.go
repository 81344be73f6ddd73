package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategoryIsRevenue(t *testing.T) {
	revenue := map[Category]bool{
		CategoryGrossRevenue:    true,
		CategoryFinancialIncome: true,
	}
	for _, c := range Categories {
		if got := c.IsRevenue(); got != revenue[c] {
			t.Errorf("%s: IsRevenue() = %v", c, got)
		}
	}
}

func TestDateWithin(t *testing.T) {
	start := NewDate(2024, 1, 1)
	end := NewDate(2024, 1, 31)
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2024, 1, 1), true},  // inclusive start
		{NewDate(2024, 1, 31), true}, // inclusive end
		{NewDate(2024, 1, 15), true},
		{NewDate(2023, 12, 31), false},
		{NewDate(2024, 2, 1), false},
	}
	for _, tc := range cases {
		if got := tc.d.Within(start, end); got != tc.want {
			t.Errorf("%s within [%s, %s] = %v, want %v", tc.d.ISO(), start.ISO(), end.ISO(), got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ISO() != "2024-03-05" {
		t.Fatalf("got %s", d.ISO())
	}
	for _, bad := range []string{"", "05/03/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	valid := Account{
		ID:        "A1",
		CompanyID: "C1",
		Code:      "1.1",
		Name:      "Vendas",
		Category:  CategoryGrossRevenue,
		Type:      AccountAnalytic,
		Active:    true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid account rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Account)
	}{
		{"empty company", func(a *Account) { a.CompanyID = " " }},
		{"empty name", func(a *Account) { a.Name = "" }},
		{"unknown category", func(a *Account) { a.Category = "Receitas Diversas" }},
		{"bad type", func(a *Account) { a.Type = "Grouping" }},
	}
	for _, tc := range cases {
		a := valid
		tc.mutate(&a)
		if err := a.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLedgerEntryValidate(t *testing.T) {
	valid := LedgerEntry{
		ID:          "L1",
		CompanyID:   "C1",
		AccountID:   "A1",
		Date:        NewDate(2024, 1, 10),
		Description: "venda balcão",
		Amount:      decimal.NewFromInt(100),
		Type:        Credit,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	negative := valid
	negative.Amount = decimal.NewFromInt(-100)
	if err := negative.Validate(); err != nil {
		t.Fatalf("negative amounts pass validation by design, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*LedgerEntry)
	}{
		{"empty company", func(e *LedgerEntry) { e.CompanyID = "" }},
		{"empty account", func(e *LedgerEntry) { e.AccountID = "" }},
		{"zero date", func(e *LedgerEntry) { e.Date = Date{} }},
		{"empty description", func(e *LedgerEntry) { e.Description = "  " }},
		{"bad type", func(e *LedgerEntry) { e.Type = "Transfer" }},
	}
	for _, tc := range cases {
		e := valid
		tc.mutate(&e)
		if err := e.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLedgerEntrySigned(t *testing.T) {
	amount := decimal.NewFromInt(100)
	cases := []struct {
		category Category
		typ      EntryType
		want     int64
	}{
		{CategoryGrossRevenue, Credit, 100},
		{CategoryGrossRevenue, Debit, -100},
		{CategoryFinancialIncome, Credit, 100},
		{CategoryAdministrativeExpenses, Debit, 100},
		{CategoryAdministrativeExpenses, Credit, -100},
		{CategoryCostOfGoods, Debit, 100},
	}
	for _, tc := range cases {
		e := LedgerEntry{Amount: amount, Type: tc.typ}
		if got := e.Signed(tc.category); !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Errorf("%s %s: got %s, want %d", tc.category, tc.typ, got, tc.want)
		}
	}
}
