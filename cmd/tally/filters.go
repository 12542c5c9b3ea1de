package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/csv"
	"github.com/yurifrl/tally/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	kind      string
	category  string
}

func (f *filters) toFilterFunc() (csv.FilterFunc[*models.Transaction], error) {
	var start, end time.Time
	var err error
	if f.startDate != "" {
		if start, err = time.Parse(models.DateLayout, f.startDate); err != nil {
			return nil, fmt.Errorf("invalid --start %q: expected yyyy-MM-dd", f.startDate)
		}
	}
	if f.endDate != "" {
		if end, err = time.Parse(models.DateLayout, f.endDate); err != nil {
			return nil, fmt.Errorf("invalid --end %q: expected yyyy-MM-dd", f.endDate)
		}
	}
	var kind models.Kind
	if f.kind != "" {
		if kind, err = models.ParseKind(f.kind); err != nil {
			return nil, fmt.Errorf("invalid --kind: %w", err)
		}
	}
	minAmount := decimal.NewFromFloat(f.minAmount)
	maxAmount := decimal.NewFromFloat(f.maxAmount)

	return func(t *models.Transaction) bool {
		if !start.IsZero() && t.Date().Before(start) {
			return false
		}
		if !end.IsZero() && t.Date().After(end) {
			return false
		}
		if f.minAmount != 0 && t.Amount().LessThan(minAmount) {
			return false
		}
		if f.maxAmount != 0 && t.Amount().GreaterThan(maxAmount) {
			return false
		}
		if kind != 0 && t.Kind() != kind {
			return false
		}
		if f.category != "" && !strings.Contains(strings.ToLower(t.Category()), strings.ToLower(f.category)) {
			return false
		}
		return true
	}, nil
}
