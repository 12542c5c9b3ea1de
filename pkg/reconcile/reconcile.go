// Package reconcile decides which incoming transactions, from a batch file or
// a bank statement, are already in the ledger.
package reconcile

import (
	"github.com/yurifrl/tally/pkg/compare"
	"github.com/yurifrl/tally/pkg/models"
)

// Status indicates the reconciliation result for an incoming transaction.
//
//   - Synced: already present in the ledger.
//   - ToAdd:  missing, needs to be appended.
type Status int

const (
	Synced Status = iota
	ToAdd
)

func (s Status) String() string {
	if s == Synced {
		return "synced"
	}
	return "to_add"
}

// Entry links an incoming transaction with the ledger transaction it matched,
// if any.
type Entry struct {
	Incoming *models.Transaction
	Existing *models.Transaction // nil when status == ToAdd
	Status   Status
}

type Report struct {
	Items  []Entry
	toSync []*models.Transaction
}

// Build matches every incoming transaction against the existing ones. Each
// existing transaction can satisfy at most one incoming transaction, so a
// batch that repeats a ledger entry twice adds one copy.
func Build(existing, incoming []*models.Transaction) *Report {
	idx := make(map[string][]*models.Transaction, len(existing))
	for _, tx := range existing {
		k := compare.Key(tx)
		idx[k] = append(idx[k], tx)
	}

	items := make([]Entry, 0, len(incoming))
	toSync := make([]*models.Transaction, 0)
	for _, in := range incoming {
		var found *models.Transaction
		k := compare.Key(in)
		if candidates := idx[k]; len(candidates) > 0 && compare.Equal(in, candidates[0]) {
			found = candidates[0]
			idx[k] = candidates[1:]
		}
		status := ToAdd
		if found != nil {
			status = Synced
		}
		items = append(items, Entry{Incoming: in, Existing: found, Status: status})
		if status == ToAdd {
			toSync = append(toSync, in)
		}
	}

	return &Report{Items: items, toSync: toSync}
}

// InSyncCount returns how many incoming transactions are already in the ledger.
func (r *Report) InSyncCount() int {
	return len(r.Items) - len(r.toSync)
}

// MissingCount returns how many incoming transactions are missing from the ledger.
func (r *Report) MissingCount() int {
	return len(r.toSync)
}

// TransactionsToSync returns the incoming transactions that still need to be
// appended, in input order.
func (r *Report) TransactionsToSync() []*models.Transaction {
	return r.toSync
}
