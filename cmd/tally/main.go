package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yurifrl/tally/pkg/config"
	"github.com/yurifrl/tally/pkg/csv"
	"github.com/yurifrl/tally/pkg/executors"
	"github.com/yurifrl/tally/pkg/importer"
	"github.com/yurifrl/tally/pkg/ledger"
	"github.com/yurifrl/tally/pkg/menu"
	"github.com/yurifrl/tally/pkg/models"
	"github.com/yurifrl/tally/pkg/plan"
	"github.com/yurifrl/tally/pkg/store"
)

var (
	cliFilters filters
	cfgFile    string
)

// app holds what every command needs once config has been resolved.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *store.File
}

func setup(cmd *cobra.Command) (*app, error) {
	// Load configuration (config file + env + flag overrides)
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tally",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return &app{cfg: cfg, logger: logger, store: store.New(logger)}, nil
}

// openLedger loads the configured ledger file. A missing file gives an empty
// ledger unless mustExist is set.
func (a *app) openLedger(mustExist bool) (*ledger.Ledger, error) {
	l := ledger.New(a.logger)
	if !mustExist && !store.Exists(a.cfg.File) {
		a.logger.Debug("ledger file not found, starting empty", "file", a.cfg.File)
		return l, nil
	}

	lines, err := a.store.ReadLines(a.cfg.File)
	if err != nil {
		return nil, err
	}
	n, err := l.Load(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", a.cfg.File, err)
	}
	a.logger.Debug("ledger loaded", "file", a.cfg.File, "transactions", n)
	return l, nil
}

func (a *app) saveLedger(l *ledger.Ledger) error {
	if err := a.store.WriteLines(a.cfg.File, l.Save()); err != nil {
		return err
	}
	a.logger.Info("ledger saved", "file", a.cfg.File, "transactions", l.Len())
	return nil
}

var rootCmd = &cobra.Command{
	Use:           "tally",
	Short:         "Personal income and expense ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		l := ledger.New(a.logger)
		if a.cfg.Autoload && store.Exists(a.cfg.File) {
			if l, err = a.openLedger(true); err != nil {
				a.logger.Warn("autoload failed, starting with an empty ledger", "error", err)
				l = ledger.New(a.logger)
			}
		}

		session := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), l, a.store, a.logger, menu.Options{
			DefaultFile:       a.cfg.File,
			IncomeCategories:  a.cfg.IncomeCategories,
			ExpenseCategories: a.cfg.ExpenseCategories,
		})
		return session.Run()
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <yyyy-MM>",
	Short: "Print the income and expense summary of a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q: expected yyyy-MM", args[0])
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		l, err := a.openLedger(true)
		if err != nil {
			return err
		}

		s := l.MonthlySummary(period.Year(), period.Month())
		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			_, err := pp.Fprintln(cmd.OutOrStdout(), s)
			return err
		}
		executors.WriteSummary(cmd.OutOrStdout(), s)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print ledger lines, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := cliFilters.toFilterFunc()
		if err != nil {
			return err
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		l, err := a.openLedger(true)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(csv.Create(l.Transactions(), filter))
		return err
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <batch_file>",
	Short: "Preview a YAML batch of transactions against the ledger (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, incoming, err := loadBatch(cmd, args[0])
		if err != nil {
			return err
		}
		l, err := a.openLedger(false)
		if err != nil {
			return err
		}

		executors.New(a.logger, cmd.OutOrStdout()).Plan(l, incoming)
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <batch_file>",
	Short: "Add a YAML batch of transactions to the ledger file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, incoming, err := loadBatch(cmd, args[0])
		if err != nil {
			return err
		}
		return a.apply(cmd, incoming)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <statement_path>",
	Short: "Add bank statement transactions (txt, xls, ofx, fatura csv) to the ledger file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		incoming, err := importer.New(a.logger).FromPath(args[0])
		if err != nil {
			return err
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			l, err := a.openLedger(false)
			if err != nil {
				return err
			}
			executors.New(a.logger, cmd.OutOrStdout()).Plan(l, incoming)
			return nil
		}
		return a.apply(cmd, incoming)
	},
}

func loadBatch(cmd *cobra.Command, path string) (*app, []*models.Transaction, error) {
	a, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}

	p, err := plan.Load(path)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Batch %s\n", path)
	p.Print(cmd.OutOrStdout())

	incoming, err := p.Build()
	if err != nil {
		return nil, nil, err
	}
	return a, incoming, nil
}

func (a *app) apply(cmd *cobra.Command, incoming []*models.Transaction) error {
	l, err := a.openLedger(false)
	if err != nil {
		return err
	}

	added := executors.New(a.logger, cmd.OutOrStdout()).Apply(l, incoming)
	if added == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to add, the ledger is up to date.")
		return nil
	}
	if err := a.saveLedger(l); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d transaction(s) added to %s\n", added, a.cfg.File)
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Ledger file (default transactions.txt)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().Bool("autoload", false, "Load the ledger file before showing the menu")

	summaryCmd.Flags().Bool("dump", false, "Pretty-print the raw summary structure")

	// Filter flags
	exportCmd.Flags().StringVar(&cliFilters.startDate, "start", "", "Start date (yyyy-MM-dd)")
	exportCmd.Flags().StringVar(&cliFilters.endDate, "end", "", "End date (yyyy-MM-dd)")
	exportCmd.Flags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	exportCmd.Flags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	exportCmd.Flags().StringVar(&cliFilters.kind, "kind", "", "Only Income or Expense")
	exportCmd.Flags().StringVar(&cliFilters.category, "category", "", "Filter by category (case insensitive)")

	importCmd.Flags().Bool("dry-run", false, "Preview instead of writing the ledger file")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
