package executors

import (
	"github.com/yurifrl/tally/pkg/ledger"
	"github.com/yurifrl/tally/pkg/models"
	"github.com/yurifrl/tally/pkg/reconcile"
)

// Apply appends the incoming transactions the ledger does not have yet and
// returns how many were added.
func (e *Executor) Apply(l *ledger.Ledger, incoming []*models.Transaction) int {
	e.logger.Debug("applying transactions", "incoming", len(incoming))

	report := reconcile.Build(l.Transactions(), incoming)
	toSync := report.TransactionsToSync()
	l.Append(toSync...)

	e.logger.Info("transactions added", "count", len(toSync), "already_present", report.InSyncCount())
	return len(toSync)
}
