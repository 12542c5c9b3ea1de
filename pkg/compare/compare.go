package compare

import (
	"fmt"

	"github.com/yurifrl/tally/pkg/models"
)

// Equal compares two ledger transactions on every field: kind, category,
// amount and date. Amounts are compared numerically so "3000" and "3000.00"
// match.
func Equal(a, b *models.Transaction) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() || a.Category() != b.Category() {
		return false
	}
	if !a.Amount().Equal(b.Amount()) {
		return false
	}
	return a.Date().Equal(b.Date())
}

// Key is a string that is identical for transactions that are Equal.
func Key(t *models.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%s", t.Kind(), t.Category(), t.Amount().String(), t.Date().Format(models.DateLayout))
}
