package executors

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/tally/pkg/ledger"
	"github.com/yurifrl/tally/pkg/models"
	"github.com/yurifrl/tally/pkg/reconcile"
)

var (
	syncedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	addedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// Plan reconciles incoming transactions against the ledger and prints a
// preview without changing anything.
func (e *Executor) Plan(l *ledger.Ledger, incoming []*models.Transaction) *reconcile.Report {
	report := reconcile.Build(l.Transactions(), incoming)

	e.logger.Debug("processing plan report", "total", len(report.Items), "in_sync", report.InSyncCount(), "to_add", report.MissingCount())

	for _, m := range report.Items {
		line := fmt.Sprintf("%s | %-7s | %-30s | %s", m.Incoming.Date().Format(models.DateLayout), m.Incoming.Kind(), m.Incoming.Category(), m.Incoming.Amount())
		if m.Status == reconcile.Synced {
			fmt.Fprintln(e.out, syncedStyle.Render("= "+line))
			continue
		}
		fmt.Fprintln(e.out, addedStyle.Render("+ "+line))
	}

	if report.MissingCount() == 0 {
		fmt.Fprintf(e.out, "\nPlan: All %d transaction(s) are already in the ledger\n", report.InSyncCount())
	} else {
		fmt.Fprintf(e.out, "\nPlan: %d transaction(s) will be added, %d already in the ledger\n", report.MissingCount(), report.InSyncCount())
	}

	return report
}
