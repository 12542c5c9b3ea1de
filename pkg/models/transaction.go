package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format accepted and produced by the ledger.
const DateLayout = "2006-01-02"

// Kind tells income and expense transactions apart.
type Kind int

const (
	Income Kind = iota + 1
	Expense
)

var (
	ErrInvalidKind     = errors.New("invalid kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category")
)

func (k Kind) String() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// ParseKind matches the textual form exactly; "income" is not a kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Income":
		return Income, nil
	case "Expense":
		return Expense, nil
	}
	return 0, &ParseError{Field: "kind", Value: s, Err: ErrInvalidKind}
}

// ParseError reports a field that could not be turned into a transaction value.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Transaction is a single income or expense record. It has no setters; build
// one with NewTransaction.
type Transaction struct {
	kind     Kind
	category string
	amount   decimal.Decimal
	date     time.Time
}

func (t *Transaction) Kind() Kind {
	return t.kind
}

func (t *Transaction) Category() string {
	return t.category
}

func (t *Transaction) Amount() decimal.Decimal {
	return t.amount
}

func (t *Transaction) Date() time.Time {
	return t.date
}

// In reports whether the transaction falls in the given calendar month.
func (t *Transaction) In(year int, month time.Month) bool {
	return t.date.Year() == year && t.date.Month() == month
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s", t.date.Format(DateLayout), t.kind, t.category, t.amount)
}

// TransactionBuilder collects fields and keeps the first validation error.
type TransactionBuilder struct {
	tx      Transaction
	dateSet bool
	err     error
}

func NewTransaction(kind Kind, category string) *TransactionBuilder {
	b := &TransactionBuilder{tx: Transaction{kind: kind, category: category}}
	if !kind.Valid() {
		b.err = &ParseError{Field: "kind", Value: kind.String(), Err: ErrInvalidKind}
	} else if strings.ContainsAny(category, ",\r\n") {
		b.err = &ParseError{Field: "category", Value: category, Err: ErrInvalidCategory}
	}
	return b
}

// SetAmount parses a plain decimal such as "3000.0". Surrounding spaces are
// ignored; exponent notation is rejected.
func (b *TransactionBuilder) SetAmount(s string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	trimmed := strings.TrimSpace(s)
	if strings.ContainsAny(trimmed, "eE") {
		b.err = &ParseError{Field: "amount", Value: s, Err: ErrInvalidAmount}
		return b
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		b.err = &ParseError{Field: "amount", Value: s, Err: ErrInvalidAmount}
		return b
	}
	return b.SetAmountValue(d)
}

func (b *TransactionBuilder) SetAmountValue(d decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if d.IsNegative() {
		b.err = &ParseError{Field: "amount", Value: d.String(), Err: ErrNegativeAmount}
		return b
	}
	b.tx.amount = d
	return b
}

// SetDate parses a yyyy-MM-dd date.
func (b *TransactionBuilder) SetDate(s string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		b.err = &ParseError{Field: "date", Value: s, Err: ErrInvalidDate}
		return b
	}
	b.tx.date = date
	b.dateSet = true
	return b
}

// SetDateValue keeps only the calendar date of t.
func (b *TransactionBuilder) SetDateValue(t time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if t.IsZero() {
		b.err = &ParseError{Field: "date", Value: "", Err: ErrInvalidDate}
		return b
	}
	b.tx.date = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	b.dateSet = true
	return b
}

func (b *TransactionBuilder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.dateSet {
		return nil, &ParseError{Field: "date", Value: "", Err: ErrInvalidDate}
	}
	tx := b.tx
	return &tx, nil
}
