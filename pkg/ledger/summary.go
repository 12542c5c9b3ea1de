package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/models"
)

// Summary is the aggregate of a single calendar month. Categories with no
// transactions in the month are absent from the maps.
type Summary struct {
	Year              int
	Month             time.Month
	Count             int
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	IncomeCategories  map[string]decimal.Decimal
	ExpenseCategories map[string]decimal.Decimal
}

func newSummary(year int, month time.Month) *Summary {
	return &Summary{
		Year:              year,
		Month:             month,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		IncomeCategories:  map[string]decimal.Decimal{},
		ExpenseCategories: map[string]decimal.Decimal{},
	}
}

func (s *Summary) add(tx *models.Transaction) {
	s.Count++
	switch tx.Kind() {
	case models.Income:
		s.TotalIncome = s.TotalIncome.Add(tx.Amount())
		s.IncomeCategories[tx.Category()] = s.IncomeCategories[tx.Category()].Add(tx.Amount())
	case models.Expense:
		s.TotalExpense = s.TotalExpense.Add(tx.Amount())
		s.ExpenseCategories[tx.Category()] = s.ExpenseCategories[tx.Category()].Add(tx.Amount())
	}
}

// NetSavings is total income minus total expense.
func (s *Summary) NetSavings() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// Period renders the month as yyyy-MM.
func (s *Summary) Period() string {
	return time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// SortedCategories returns the keys of m in lexical order, for stable output.
func SortedCategories(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
