// Package ledger keeps the in-memory list of transactions for a session and
// answers monthly questions about it.
package ledger

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/tally/pkg/csv"
	"github.com/yurifrl/tally/pkg/models"
)

// Ledger is append-only: transactions are never updated or removed.
type Ledger struct {
	logger       *log.Logger
	transactions []*models.Transaction
}

func New(logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Default()
	}
	return &Ledger{logger: logger}
}

// Add validates the raw amount and date and appends the transaction.
func (l *Ledger) Add(kind models.Kind, category, amount, date string) (*models.Transaction, error) {
	tx, err := models.NewTransaction(kind, category).
		SetAmount(amount).
		SetDate(date).
		Build()
	if err != nil {
		return nil, err
	}
	l.transactions = append(l.transactions, tx)
	l.logger.Debug("transaction added", "kind", kind, "category", category, "amount", tx.Amount(), "date", date)
	return tx, nil
}

func (l *Ledger) Append(txs ...*models.Transaction) {
	for _, tx := range txs {
		if tx != nil {
			l.transactions = append(l.transactions, tx)
		}
	}
}

// Transactions returns a copy of the ledger in insertion order.
func (l *Ledger) Transactions() []*models.Transaction {
	out := make([]*models.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) Len() int {
	return len(l.transactions)
}

// MonthlySummary totals the transactions dated in the given month.
func (l *Ledger) MonthlySummary(year int, month time.Month) *Summary {
	s := newSummary(year, month)
	for _, tx := range l.transactions {
		if tx.In(year, month) {
			s.add(tx)
		}
	}
	return s
}

// Load parses ledger lines and appends them. Lines without exactly four
// fields are skipped. A bad kind, amount or date on a four-field line fails
// the whole load and leaves the ledger untouched.
func (l *Ledger) Load(lines []string) (int, error) {
	txs, skipped, err := csv.ParseLines(lines)
	if err != nil {
		return 0, err
	}
	l.transactions = append(l.transactions, txs...)
	l.logger.Debug("lines loaded", "loaded", len(txs), "skipped", skipped)
	return len(txs), nil
}

// Save renders one kind,category,amount,date line per transaction.
func (l *Ledger) Save() []string {
	return csv.Lines(l.transactions)
}
