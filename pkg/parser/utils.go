package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/models"
)

// parseBRL reads Brazilian formatted values such as "-2.327,00" or "287,5".
func parseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	return decimal.NewFromString(s)
}

// categoryFromPayee makes a payee usable as a ledger category.
func categoryFromPayee(payee string) string {
	payee = strings.NewReplacer(",", " ", "\r", " ", "\n", " ").Replace(payee)
	return strings.Join(strings.Fields(payee), " ")
}

// fromSignedValue maps credits to Income and debits to Expense. When
// debitPositive is set, as on a credit card bill, the signs are reversed.
func fromSignedValue(date time.Time, payee string, value decimal.Decimal, debitPositive bool) (*models.Transaction, error) {
	kind := models.Income
	if value.IsNegative() != debitPositive {
		kind = models.Expense
	}
	if value.IsZero() {
		return nil, fmt.Errorf("zero value")
	}
	return models.NewTransaction(kind, categoryFromPayee(payee)).
		SetAmountValue(value.Abs()).
		SetDateValue(date).
		Build()
}
