package ledger

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/tally/pkg/csv"
	"github.com/yurifrl/tally/pkg/models"
)

func asStrings(m map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

func TestAddIsReflectedInSummary(t *testing.T) {
	tests := []struct {
		kind     models.Kind
		category string
		amount   string
		date     string
	}{
		{models.Income, "Salary", "3000.0", "2024-01-15"},
		{models.Income, "Business", "0", "2023-12-31"},
		{models.Expense, "Food", "12.34", "2024-02-29"},
		{models.Expense, "", "7", "2025-07-01"},
	}
	for _, tt := range tests {
		l := New(log.Default())
		tx, err := l.Add(tt.kind, tt.category, tt.amount, tt.date)
		require.NoError(t, err)

		s := l.MonthlySummary(tx.Date().Year(), tx.Date().Month())
		assert.Equal(t, 1, s.Count)
		want := decimal.RequireFromString(tt.amount)
		if tt.kind == models.Income {
			assert.True(t, s.TotalIncome.Equal(want), "income %s", s.TotalIncome)
			assert.True(t, s.IncomeCategories[tt.category].Equal(want))
			assert.Empty(t, s.ExpenseCategories)
		} else {
			assert.True(t, s.TotalExpense.Equal(want), "expense %s", s.TotalExpense)
			assert.True(t, s.ExpenseCategories[tt.category].Equal(want))
			assert.Empty(t, s.IncomeCategories)
		}
	}
}

func TestAddRejectsMalformedInput(t *testing.T) {
	l := New(log.Default())

	_, err := l.Add(models.Expense, "Rent", "12,5", "2024-03-01")
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = l.Add(models.Expense, "Rent", "12.5", "01-03-2024")
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	var pe *models.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, l.Len())
}

func TestLoadScenario(t *testing.T) {
	l := New(log.Default())
	n, err := l.Load([]string{
		"Income,Salary,1000,2024-03-01",
		"Expense,Rent,400,2024-03-05",
		"bad,line",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, l.Len())

	s := l.MonthlySummary(2024, time.March)
	assert.Equal(t, "1000", s.TotalIncome.String())
	assert.Equal(t, "400", s.TotalExpense.String())
	assert.Equal(t, "600", s.NetSavings().String())
	assert.Equal(t, map[string]string{"Salary": "1000"}, asStrings(s.IncomeCategories))
	assert.Equal(t, map[string]string{"Rent": "400"}, asStrings(s.ExpenseCategories))
}

func TestLoadAbortsAndKeepsLedger(t *testing.T) {
	l := New(log.Default())
	_, err := l.Add(models.Income, "Salary", "10", "2024-01-01")
	require.NoError(t, err)

	n, err := l.Load([]string{
		"Income,Bonus,50,2024-01-02",
		"Expense,Rent,oops,2024-01-03",
		"Expense,Food,5,2024-01-04",
	})
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	var le *csv.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, 1, l.Len(), "a failed load must not append anything")
}

func TestLoadRejectsExponentAmount(t *testing.T) {
	l := New(log.Default())
	n, err := l.Load([]string{
		"Income,Salary,1e50000000,2024-01-01",
		"Income,Salary,1,2024-01-02",
	})
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	var le *csv.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, 0, l.Len())
}

func TestOtherMonthExcluded(t *testing.T) {
	l := New(log.Default())
	_, err := l.Add(models.Expense, "Food", "30", "2024-02-28")
	require.NoError(t, err)
	_, err = l.Add(models.Expense, "Food", "20", "2024-03-01")
	require.NoError(t, err)
	_, err = l.Add(models.Expense, "Food", "99", "2023-03-15")
	require.NoError(t, err)

	s := l.MonthlySummary(2024, time.March)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, "20", s.TotalExpense.String())
	assert.Equal(t, "-20", s.NetSavings().String())
}

func TestEmptyMonth(t *testing.T) {
	l := New(log.Default())
	_, err := l.Add(models.Income, "Salary", "1000", "2024-01-10")
	require.NoError(t, err)

	s := l.MonthlySummary(2024, time.June)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.NetSavings().IsZero())
	assert.NotNil(t, s.IncomeCategories)
	assert.Empty(t, s.IncomeCategories)
	assert.NotNil(t, s.ExpenseCategories)
	assert.Empty(t, s.ExpenseCategories)
}

func TestSummaryIgnoresInsertionOrder(t *testing.T) {
	lines := []string{
		"Income,Salary,1000.10,2024-05-01",
		"Income,Business,250.05,2024-05-12",
		"Income,Salary,0.20,2024-05-30",
		"Expense,Food,12.34,2024-05-02",
		"Expense,Food,7.66,2024-05-03",
		"Expense,Rent,800,2024-05-05",
		"Expense,Travel,0.1,2024-05-20",
		"Expense,Travel,0.2,2024-05-21",
	}
	base := New(log.Default())
	_, err := base.Load(lines)
	require.NoError(t, err)
	want := base.MonthlySummary(2024, time.May)
	assert.Equal(t, "0.3", want.ExpenseCategories["Travel"].String())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), lines...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		l := New(log.Default())
		_, err := l.Load(shuffled)
		require.NoError(t, err)
		got := l.MonthlySummary(2024, time.May)

		assert.True(t, want.TotalIncome.Equal(got.TotalIncome))
		assert.True(t, want.TotalExpense.Equal(got.TotalExpense))
		assert.Equal(t, asStrings(want.IncomeCategories), asStrings(got.IncomeCategories))
		assert.Equal(t, asStrings(want.ExpenseCategories), asStrings(got.ExpenseCategories))
	}
}

func TestNetSavingsIsExact(t *testing.T) {
	l := New(log.Default())
	_, err := l.Load([]string{
		"Income,Salary,0.1,2024-08-01",
		"Income,Salary,0.2,2024-08-02",
		"Expense,Food,0.3,2024-08-03",
	})
	require.NoError(t, err)

	s := l.MonthlySummary(2024, time.August)
	assert.True(t, s.NetSavings().IsZero(), "0.1 + 0.2 - 0.3 should be exactly zero, got %s", s.NetSavings())
	assert.True(t, s.NetSavings().Equal(s.TotalIncome.Sub(s.TotalExpense)))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := New(log.Default())
	inputs := [][4]string{
		{"Income", "Salary", "3000.0", "2024-01-15"},
		{"Expense", "Rent", "1200.50", "2024-01-01"},
		{"Expense", "Food", "0.01", "2024-02-29"},
		{"Income", "Business", "15", "1999-12-31"},
		{"Expense", "", "42", "2030-06-06"},
	}
	for _, in := range inputs {
		kind, err := models.ParseKind(in[0])
		require.NoError(t, err)
		_, err = original.Add(kind, in[1], in[2], in[3])
		require.NoError(t, err)
	}

	reloaded := New(log.Default())
	n, err := reloaded.Load(original.Save())
	require.NoError(t, err)
	assert.Equal(t, len(inputs), n)

	want, got := original.Transactions(), reloaded.Transactions()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Kind(), got[i].Kind())
		assert.Equal(t, want[i].Category(), got[i].Category())
		assert.True(t, want[i].Amount().Equal(got[i].Amount()), "amount %s != %s", want[i].Amount(), got[i].Amount())
		assert.True(t, want[i].Date().Equal(got[i].Date()))
	}
	assert.Equal(t, original.Save(), reloaded.Save())
}

func TestSaveFormat(t *testing.T) {
	l := New(log.Default())
	_, err := l.Add(models.Income, "Salary", "3000.0", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"Income,Salary,3000,2024-01-15"}, l.Save())
}

func TestTransactionsReturnsCopy(t *testing.T) {
	l := New(nil)
	_, err := l.Add(models.Income, "Salary", "1", "2024-01-01")
	require.NoError(t, err)

	txs := l.Transactions()
	txs[0] = nil
	assert.NotNil(t, l.Transactions()[0])
}

func TestSummaryPeriod(t *testing.T) {
	s := New(nil).MonthlySummary(2024, time.March)
	assert.Equal(t, "2024-03", s.Period())
	assert.Equal(t, []string{"Food", "Rent", "Travel"}, SortedCategories(map[string]decimal.Decimal{
		"Travel": decimal.Zero, "Food": decimal.Zero, "Rent": decimal.Zero,
	}))
}
