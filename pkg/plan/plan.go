package plan

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yurifrl/tally/pkg/models"
)

type Entry struct {
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
	Date     string `yaml:"date"`
}

// Plan is a YAML batch of transactions to add to the ledger.
type Plan struct {
	Transactions []Entry `yaml:"transactions"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Transactions) == 0 {
		return nil, fmt.Errorf("plan has no transactions")
	}
	return &p, nil
}

// Build validates every entry with the same rules as the ledger file.
func (p *Plan) Build() ([]*models.Transaction, error) {
	txs := make([]*models.Transaction, 0, len(p.Transactions))
	for i, e := range p.Transactions {
		kind, err := models.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
		tx, err := models.NewTransaction(kind, e.Category).
			SetAmount(e.Amount).
			SetDate(e.Date).
			Build()
		if err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (p *Plan) Print(w io.Writer) {
	for i, e := range p.Transactions {
		fmt.Fprintf(w, "[%d] kind=%s category=%s amount=%s date=%s\n", i+1, e.Kind, e.Category, e.Amount, e.Date)
	}
}
