package parser

import (
	"strings"
	"time"

	"github.com/yurifrl/tally/pkg/models"
)

// ParseItauExtratoTXT reads "dd/mm/yyyy;payee;value" lines.
func (p *Parser) ParseItauExtratoTXT(data []byte) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	lines := strings.Split(string(data), "\n")

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			continue
		}

		date, err := time.Parse("02/01/2006", strings.TrimSpace(fields[0]))
		if err != nil {
			p.logger.Debug("error parsing date", "row", line, "error", err)
			continue
		}

		value, err := parseBRL(fields[2])
		if err != nil {
			p.logger.Debug("error parsing value", "row", line, "error", err)
			continue
		}

		transaction, err := fromSignedValue(date, fields[1], value, false)
		if err != nil {
			p.logger.Debug("error building transaction", "row", line, "error", err)
			continue
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}
