package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/tally/pkg/models"
)

// ParseItauFaturaCSV parses Itau credit card CSV files with format: data, lançamento, valor
// Expected format: 2025-06-27,IFD*55668457 GABRIEL A,113.98
// Charges are positive and become expenses; payments and refunds are negative.
func (p *Parser) ParseItauFaturaCSV(data []byte) ([]*models.Transaction, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // allow variable columns – we will validate manually

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	p.logger.Debug("parsing Itau fatura CSV", "total_records", len(records), "first_record", records[0])

	// Expect header: data, lançamento, valor (3 columns)
	start := 0
	if len(records[0]) >= 3 && (strings.EqualFold(strings.TrimSpace(records[0][0]), "data") ||
		strings.EqualFold(strings.TrimSpace(records[0][0]), "date")) {
		start = 1 // skip header
	}

	txs := make([]*models.Transaction, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 {
			// skip malformed line but log for debug
			p.logger.Debug("csv line has less than 3 fields, skipping", "line", i)
			continue
		}

		date, err := time.Parse(models.DateLayout, strings.TrimSpace(rec[0]))
		if err != nil {
			p.logger.Debug("unsupported date format, skipping", "line", i, "date", rec[0])
			continue
		}

		// Dot is the decimal separator in this export
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			p.logger.Debug("invalid amount, skipping", "line", i, "err", err)
			continue
		}

		tx, err := fromSignedValue(date, rec[1], amount, true)
		if err != nil {
			p.logger.Debug("failed to build transaction from csv line", "line", i, "err", err)
			continue
		}
		txs = append(txs, tx)
	}

	p.logger.Info("Itau fatura CSV parsing complete", "total_transactions", len(txs), "total_records", len(records))
	return txs, nil
}
