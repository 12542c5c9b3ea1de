package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Income", Income, true},
		{"Expense", Expense, true},
		{"income", 0, false},
		{"EXPENSE", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestBuild(t *testing.T) {
	tx, err := NewTransaction(Income, "Salary").SetAmount("3000.0").SetDate("2024-01-15").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if tx.Kind() != Income || tx.Category() != "Salary" {
		t.Errorf("unexpected transaction %v", tx)
	}
	if !tx.Amount().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected amount 3000, got %s", tx.Amount())
	}
	if !tx.Date().Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", tx.Date())
	}
	if !tx.In(2024, time.January) || tx.In(2024, time.February) || tx.In(2023, time.January) {
		t.Errorf("In reported the wrong month for %v", tx.Date())
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name  string
		build *TransactionBuilder
		field string
		err   error
	}{
		{"amount not a number", NewTransaction(Expense, "Rent").SetAmount("abc").SetDate("2024-01-01"), "amount", ErrInvalidAmount},
		{"amount exponent", NewTransaction(Expense, "Rent").SetAmount("1e50000000").SetDate("2024-01-01"), "amount", ErrInvalidAmount},
		{"amount small exponent", NewTransaction(Expense, "Rent").SetAmount("2E3").SetDate("2024-01-01"), "amount", ErrInvalidAmount},
		{"amount empty", NewTransaction(Expense, "Rent").SetAmount("").SetDate("2024-01-01"), "amount", ErrInvalidAmount},
		{"negative amount", NewTransaction(Expense, "Rent").SetAmount("-5").SetDate("2024-01-01"), "amount", ErrNegativeAmount},
		{"slash date", NewTransaction(Expense, "Rent").SetAmount("5").SetDate("2024/01/01"), "date", ErrInvalidDate},
		{"unpadded date", NewTransaction(Expense, "Rent").SetAmount("5").SetDate("2024-1-5"), "date", ErrInvalidDate},
		{"impossible date", NewTransaction(Expense, "Rent").SetAmount("5").SetDate("2024-02-30"), "date", ErrInvalidDate},
		{"missing date", NewTransaction(Expense, "Rent").SetAmount("5"), "date", ErrInvalidDate},
		{"comma in category", NewTransaction(Expense, "Rent,Flat").SetAmount("5").SetDate("2024-01-01"), "category", ErrInvalidCategory},
		{"zero kind", NewTransaction(0, "Rent").SetAmount("5").SetDate("2024-01-01"), "kind", ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build.Build()
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Field != tc.field || !errors.Is(err, tc.err) {
				t.Errorf("expected %s/%v, got %s/%v", tc.field, tc.err, pe.Field, pe.Err)
			}
		})
	}
}

func TestBuildEarliestDate(t *testing.T) {
	tx, err := NewTransaction(Income, "Salary").SetAmount("1").SetDate("0001-01-01").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := tx.Date().Format(DateLayout); got != "0001-01-01" {
		t.Errorf("expected 0001-01-01, got %s", got)
	}
}

func TestSetDateValueTruncates(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	tx, err := NewTransaction(Expense, "Food").
		SetAmountValue(decimal.RequireFromString("12.5")).
		SetDateValue(time.Date(2025, 3, 17, 22, 15, 0, 0, loc)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := tx.Date().Format(DateLayout); got != "2025-03-17" {
		t.Errorf("expected 2025-03-17, got %s", got)
	}
}
