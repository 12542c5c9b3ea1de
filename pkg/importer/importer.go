package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/tally/pkg/models"
	"github.com/yurifrl/tally/pkg/parser"
)

// Importer reads bank statements from disk and converts them into ledger
// transactions. It does not touch the ledger itself.
type Importer struct {
	logger *log.Logger
	parser *parser.Parser
}

func New(logger *log.Logger) *Importer {
	return &Importer{logger: logger, parser: parser.New(logger)}
}

// FromPath accepts a file, a directory or a glob pattern. Files that fail to
// parse are logged and skipped; an error is returned only when nothing matches.
// The result is sorted by date, keeping statement order for equal dates.
func (i *Importer) FromPath(pattern string) ([]*models.Transaction, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files found matching pattern %s", pattern)
	}

	var all []*models.Transaction
	for _, match := range matches {
		fileInfo, err := os.Stat(match)
		if err != nil {
			i.logger.Warn("failed to stat file", "error", err, "file", match)
			continue
		}

		if fileInfo.IsDir() {
			txs, err := i.fromDirectory(match)
			if err != nil {
				i.logger.Warn("failed to process directory", "error", err, "dir", match)
			}
			all = append(all, txs...)
			continue
		}

		txs, err := i.FromFile(match)
		if err != nil {
			i.logger.Warn("failed to process file", "error", err, "file", match)
			continue
		}
		all = append(all, txs...)
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Date().Before(all[b].Date())
	})
	return all, nil
}

func (i *Importer) fromDirectory(dir string) ([]*models.Transaction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var all []*models.Transaction
	for _, entry := range entries {
		if entry.IsDir() || parser.DetectType(entry.Name()) == "" {
			continue
		}

		txs, err := i.FromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			i.logger.Warn("error processing file", "error", err)
			continue
		}
		all = append(all, txs...)
	}
	return all, nil
}

func (i *Importer) FromFile(path string) ([]*models.Transaction, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	transactions, err := i.parser.ProcessBytes(fileBytes, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to process file: %w", err)
	}

	i.logger.Info("statement parsed", "file", path, "transactions", len(transactions))
	return transactions, nil
}
