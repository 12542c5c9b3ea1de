package main

import (
	"testing"

	"github.com/yurifrl/tally/pkg/csv"
	"github.com/yurifrl/tally/pkg/models"
)

func TestFilters(t *testing.T) {
	var txs []*models.Transaction
	for _, line := range []string{
		"Income,Salary,1000,2024-03-01",
		"Expense,Rent,400,2024-03-05",
		"Expense,Food Market,25.5,2024-03-20",
		"Expense,Food,8,2024-04-02",
	} {
		tx, err := csv.ParseLine(csv.SplitFields(line))
		if err != nil {
			t.Fatalf("ParseLine failed: %v", err)
		}
		txs = append(txs, tx)
	}

	cases := []struct {
		name string
		f    filters
		want string
	}{
		{"none", filters{}, "Income,Salary,1000,2024-03-01\nExpense,Rent,400,2024-03-05\nExpense,Food Market,25.5,2024-03-20\nExpense,Food,8,2024-04-02\n"},
		{"date range", filters{startDate: "2024-03-02", endDate: "2024-03-31"}, "Expense,Rent,400,2024-03-05\nExpense,Food Market,25.5,2024-03-20\n"},
		{"amount range", filters{minAmount: 10, maxAmount: 500}, "Expense,Rent,400,2024-03-05\nExpense,Food Market,25.5,2024-03-20\n"},
		{"kind", filters{kind: "Income"}, "Income,Salary,1000,2024-03-01\n"},
		{"category", filters{category: "food"}, "Expense,Food Market,25.5,2024-03-20\nExpense,Food,8,2024-04-02\n"},
	}
	for _, tc := range cases {
		filter, err := tc.f.toFilterFunc()
		if err != nil {
			t.Fatalf("%s: toFilterFunc failed: %v", tc.name, err)
		}
		if got := string(csv.Create(txs, filter)); got != tc.want {
			t.Errorf("%s: expected\n%s\ngot\n%s", tc.name, tc.want, got)
		}
	}
}

func TestFiltersRejectBadValues(t *testing.T) {
	for _, f := range []filters{
		{startDate: "2024/03/01"},
		{endDate: "March"},
		{kind: "income"},
	} {
		if _, err := f.toFilterFunc(); err == nil {
			t.Errorf("expected an error for %+v", f)
		}
	}
}
