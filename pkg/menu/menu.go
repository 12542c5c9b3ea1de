// Package menu runs the numbered, prompt-driven session on top of a ledger.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/tally/pkg/executors"
	"github.com/yurifrl/tally/pkg/ledger"
	"github.com/yurifrl/tally/pkg/models"
)

// Store is where the session loads and saves ledger lines.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=menu.go Store
type Store interface {
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string) error
}

// InputFormatError is a user answer that could not be understood: a menu
// choice, a number or a date. The session reports it and carries on.
type InputFormatError struct {
	Input string
	Err   error
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}

// maxAnswerLen bounds a single answer; longer lines are reported and dropped.
const maxAnswerLen = 4096

var (
	errUnknownChoice = errors.New("unknown menu choice")
	errAnswerTooLong = fmt.Errorf("answer longer than %d bytes", maxAnswerLen)
)

type Options struct {
	// DefaultFile is used when the user answers a path prompt with nothing.
	DefaultFile       string
	IncomeCategories  []string
	ExpenseCategories []string
}

type Session struct {
	in     *bufio.Reader
	out    io.Writer
	ledger *ledger.Ledger
	store  Store
	logger *log.Logger
	opts   Options
}

func New(in io.Reader, out io.Writer, l *ledger.Ledger, store Store, logger *log.Logger, opts Options) *Session {
	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		ledger: l,
		store:  store,
		logger: logger,
		opts:   opts,
	}
}

// Run loops until the user exits or the input ends. Only a failing input
// stream is returned as an error.
func (s *Session) Run() error {
	for {
		s.printMenu()

		answer, err := s.prompt("Enter your choice: ")
		if err != nil {
			if s.reported(err) {
				continue
			}
			return s.finish(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || choice < 1 || choice > 6 {
			s.logger.Debug("invalid menu choice", "error", &InputFormatError{Input: answer, Err: errUnknownChoice})
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
			continue
		}

		switch choice {
		case 1:
			err = s.addTransaction(models.Income)
		case 2:
			err = s.addTransaction(models.Expense)
		case 3:
			err = s.viewMonthlySummary()
		case 4:
			err = s.loadFromFile()
		case 5:
			err = s.saveToFile()
		case 6:
			fmt.Fprintln(s.out, "Exiting Tally.")
			return nil
		}
		if err != nil && !s.reported(err) {
			return s.finish(err)
		}
	}
}

// reported prints answers that could not be used and tells Run to go back to
// the menu.
func (s *Session) reported(err error) bool {
	var ife *InputFormatError
	if !errors.As(err, &ife) {
		return false
	}
	s.report(err)
	return true
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out, "\nExiting Tally.")
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "\nTally Menu:")
	fmt.Fprintln(s.out, "1. Add Income")
	fmt.Fprintln(s.out, "2. Add Expense")
	fmt.Fprintln(s.out, "3. View Monthly Summary")
	fmt.Fprintln(s.out, "4. Load Transactions from File")
	fmt.Fprintln(s.out, "5. Save Transactions to File")
	fmt.Fprintln(s.out, "6. Exit")
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) > maxAnswerLen {
		return "", &InputFormatError{Input: line[:16] + "...", Err: errAnswerTooLong}
	}
	return line, nil
}

func (s *Session) report(err error) {
	s.logger.Debug("operation failed", "error", err)
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Session) addTransaction(kind models.Kind) error {
	hints := s.opts.IncomeCategories
	if kind == models.Expense {
		hints = s.opts.ExpenseCategories
	}
	label := "Enter category: "
	if len(hints) > 0 {
		label = fmt.Sprintf("Enter category (%s): ", strings.Join(hints, "/"))
	}

	category, err := s.prompt(label)
	if err != nil {
		return err
	}
	amount, err := s.prompt("Enter amount: ")
	if err != nil {
		return err
	}
	date, err := s.prompt("Enter date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.Add(kind, strings.TrimSpace(category), amount, date); err != nil {
		var pe *models.ParseError
		if errors.As(err, &pe) {
			err = &InputFormatError{Input: pe.Value, Err: fmt.Errorf("%s: %w", pe.Field, pe.Err)}
		}
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "%s added successfully.\n", kind)
	return nil
}

func (s *Session) viewMonthlySummary() error {
	answer, err := s.prompt("Enter month and year to view summary (yyyy-MM): ")
	if err != nil {
		return err
	}

	period, err := time.Parse("2006-01", strings.TrimSpace(answer))
	if err != nil {
		s.report(&InputFormatError{Input: answer, Err: errors.New("expected yyyy-MM")})
		return nil
	}

	fmt.Fprintln(s.out)
	executors.WriteSummary(s.out, s.ledger.MonthlySummary(period.Year(), period.Month()))
	return nil
}

func (s *Session) askPath(label string) (string, error) {
	if s.opts.DefaultFile != "" {
		label = fmt.Sprintf("%s [%s]: ", label, s.opts.DefaultFile)
	} else {
		label += ": "
	}
	path, err := s.prompt(label)
	if err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = s.opts.DefaultFile
	}
	return path, nil
}

func (s *Session) loadFromFile() error {
	path, err := s.askPath("Enter file path to load")
	if err != nil {
		return err
	}

	lines, err := s.store.ReadLines(path)
	if err != nil {
		fmt.Fprintf(s.out, "Error loading file: %v\n", err)
		return nil
	}

	count, err := s.ledger.Load(lines)
	if err != nil {
		fmt.Fprintf(s.out, "Error loading file: %v\n", err)
		return nil
	}
	s.logger.Info("ledger loaded", "path", path, "transactions", count)
	fmt.Fprintf(s.out, "%d transactions loaded successfully.\n", count)
	return nil
}

func (s *Session) saveToFile() error {
	path, err := s.askPath("Enter file path to save")
	if err != nil {
		return err
	}

	if err := s.store.WriteLines(path, s.ledger.Save()); err != nil {
		fmt.Fprintf(s.out, "Error saving file: %v\n", err)
		return nil
	}
	s.logger.Info("ledger saved", "path", path, "transactions", s.ledger.Len())
	fmt.Fprintln(s.out, "Transactions saved successfully.")
	return nil
}
