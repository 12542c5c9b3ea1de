package executors

import (
	"io"

	"github.com/charmbracelet/log"
)

// Executor previews and applies batches of transactions against a ledger.
type Executor struct {
	logger *log.Logger
	out    io.Writer
}

func New(logger *log.Logger, out io.Writer) *Executor {
	return &Executor{
		logger: logger,
		out:    out,
	}
}
