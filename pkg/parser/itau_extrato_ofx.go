package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yurifrl/tally/pkg/models"
)

var (
	trnRegex   = regexp.MustCompile(`(?s)<STMTTRN>(.*?)</STMTTRN>`)
	fieldRegex = map[string]*regexp.Regexp{
		"DTPOSTED": regexp.MustCompile(`<DTPOSTED>([^<\n]*)`),
		"TRNAMT":   regexp.MustCompile(`<TRNAMT>([^<\n]*)`),
		"MEMO":     regexp.MustCompile(`<MEMO>([^<\n]*)`),
	}
)

func (p *Parser) ParseItauExtratoOFX(data []byte) ([]*models.Transaction, error) {
	matches := trnRegex.FindAllStringSubmatch(string(data), -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no STMTTRN blocks found")
	}

	var transactions []*models.Transaction
	for _, match := range matches {
		block := match[1]

		getField := func(tag string) string {
			if m := fieldRegex[tag].FindStringSubmatch(block); len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
			return ""
		}

		// DTPOSTED is YYYYMMDD[HHMMSS[.XXX][TZ]]; only the date matters.
		posted := getField("DTPOSTED")
		if len(posted) < 8 {
			p.logger.Debug("missing DTPOSTED", "block", block)
			continue
		}
		date, err := time.Parse("20060102", posted[:8])
		if err != nil {
			p.logger.Debug("error parsing date", "value", posted, "error", err)
			continue
		}

		value, err := parseBRL(getField("TRNAMT"))
		if err != nil {
			p.logger.Debug("error parsing amount", "error", err)
			continue
		}

		tx, err := fromSignedValue(date, getField("MEMO"), value, false)
		if err != nil {
			p.logger.Debug("error building transaction", "error", err)
			continue
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}
