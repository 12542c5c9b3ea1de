package csv

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/models"
)

// FieldCount is the number of comma separated fields in a ledger line.
const FieldCount = 4

type Record interface {
	Kind() models.Kind
	Category() string
	Amount() decimal.Decimal
	Date() time.Time
}

type FilterFunc[T Record] func(T) bool

// LineError locates a parse failure inside a ledger file. Line is 1-based.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// FormatLine renders kind,category,amount,date.
func FormatLine(r Record) string {
	return fmt.Sprintf("%s,%s,%s,%s",
		r.Kind(),
		r.Category(),
		r.Amount().String(),
		r.Date().Format(models.DateLayout))
}

func Lines[T Record](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, FormatLine(r))
	}
	return out
}

func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		if filter == nil || filter(r) {
			buf.WriteString(FormatLine(r))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// SplitFields splits on commas and drops trailing empty fields, so
// "a,b,c,d," has four fields and "a,b,c," has three.
func SplitFields(line string) []string {
	fields := strings.Split(line, ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// ParseLine turns the four fields of a ledger line into a transaction.
func ParseLine(fields []string) (*models.Transaction, error) {
	if len(fields) != FieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	kind, err := models.ParseKind(fields[0])
	if err != nil {
		return nil, err
	}
	return models.NewTransaction(kind, fields[1]).
		SetAmount(fields[2]).
		SetDate(fields[3]).
		Build()
}

// ParseLines skips every line that does not have exactly four fields and
// stops at the first well-shaped line that fails to parse.
func ParseLines(lines []string) ([]*models.Transaction, int, error) {
	txs := make([]*models.Transaction, 0, len(lines))
	skipped := 0
	for i, line := range lines {
		fields := SplitFields(line)
		if len(fields) != FieldCount {
			skipped++
			continue
		}
		tx, err := ParseLine(fields)
		if err != nil {
			return nil, skipped, &LineError{Line: i + 1, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, skipped, nil
}
