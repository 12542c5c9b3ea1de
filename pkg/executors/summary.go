package executors

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/ledger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// WriteSummary prints a monthly summary with categories in name order.
func WriteSummary(w io.Writer, s *ledger.Summary) {
	fmt.Fprintln(w, titleStyle.Render("Summary for "+s.Period()))

	fmt.Fprintln(w, incomeStyle.Render("Total Income: "+s.TotalIncome.String()))
	writeCategories(w, s.IncomeCategories)

	fmt.Fprintln(w, expenseStyle.Render("Total Expense: "+s.TotalExpense.String()))
	writeCategories(w, s.ExpenseCategories)

	fmt.Fprintln(w, titleStyle.Render("Net Savings: "+s.NetSavings().String()))
}

func writeCategories(w io.Writer, categories map[string]decimal.Decimal) {
	for _, name := range ledger.SortedCategories(categories) {
		fmt.Fprintf(w, "  %s: %s\n", name, categories[name])
	}
}
