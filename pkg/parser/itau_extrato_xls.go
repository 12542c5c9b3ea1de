package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/yurifrl/tally/pkg/models"
)

// The marker cell comes out of the cp1252 decoder either way depending on the export.
var extratoMarkers = []string{"lançamentos", "lanÃ§amentos"}

func (p *Parser) ParseItauExtratoXLS(data []byte) ([]*models.Transaction, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(1000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	return p.parseExtratoRows(rows), nil
}

// parseExtratoRows expects date, payee, (unused), value columns after the
// transactions marker row.
func (p *Parser) parseExtratoRows(rows [][]string) []*models.Transaction {
	var transactions []*models.Transaction
	var foundTransactions bool

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		// Skip until we find the transactions section
		if isExtratoMarker(row[0]) {
			foundTransactions = true
			continue
		}

		if !foundTransactions {
			continue
		}

		date, err := time.Parse("02/01/2006", strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}

		value, err := parseBRL(row[3])
		if err != nil {
			p.logger.Debug("error parsing value", "row", row, "error", err)
			continue
		}

		transaction, err := fromSignedValue(date, row[1], value, false)
		if err != nil {
			p.logger.Debug("error building transaction", "row", row, "error", err)
			continue
		}

		transactions = append(transactions, transaction)
	}

	return transactions
}

func isExtratoMarker(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	for _, m := range extratoMarkers {
		if cell == m {
			return true
		}
	}
	return false
}
