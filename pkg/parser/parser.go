// Package parser turns bank statement exports into ledger transactions.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/tally/pkg/models"
)

type FileType string

const (
	ItauExtratoXLS FileType = "itau_extrato_xls"
	ItauExtratoTXT FileType = "itau_extrato_txt"
	ItauExtratoOFX FileType = "itau_extrato_ofx"
	ItauFaturaCSV  FileType = "itau_fatura_csv"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

func (p *Parser) ProcessBytes(data []byte, filename string) ([]*models.Transaction, error) {
	fileType := DetectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case ItauExtratoXLS:
		return p.ParseItauExtratoXLS(data)
	case ItauExtratoTXT:
		return p.ParseItauExtratoTXT(data)
	case ItauExtratoOFX:
		return p.ParseItauExtratoOFX(data)
	case ItauFaturaCSV:
		return p.ParseItauFaturaCSV(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, fmt.Errorf("unknown file type: %s", filename)
	}
}

// DetectType picks a format from the file name. It returns "" when nothing matches.
func DetectType(filename string) FileType {
	lower := strings.ToLower(filename)
	switch filepath.Ext(lower) {
	case ".xls":
		return ItauExtratoXLS
	case ".txt":
		return ItauExtratoTXT
	case ".ofx":
		return ItauExtratoOFX
	case ".csv":
		if strings.Contains(lower, "fatura") {
			return ItauFaturaCSV
		}
	}
	return ""
}
