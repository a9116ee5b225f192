package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jaeho-lee/pensim/internal/calculation"
	"github.com/jaeho-lee/pensim/internal/config"
	"github.com/jaeho-lee/pensim/internal/output"
	"github.com/jaeho-lee/pensim/internal/store"
	"github.com/jaeho-lee/pensim/internal/tui"
)

// simpleCLILogger implements calculation.Logger using the standard log package.
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pensim",
	Short: "Pension savings account simulator",
	Long:  "Accumulation and payout simulator for tax-advantaged pension savings accounts, with per-year taxation-mode selection",
}

func calculateCmd() *cobra.Command {
	var format string
	var verbose bool
	var save bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Run every plan in a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			pf, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			if verbose {
				engine.SetLogger(simpleCLILogger{})
			}

			var db *store.DB
			if save {
				if db, err = store.Open(dbPath); err != nil {
					return err
				}
				defer db.Close()
			}

			for i := range pf.Plans {
				plan := &pf.Plans[i]
				for _, notice := range plan.PolicyNotices() {
					fmt.Fprintf(os.Stderr, "notice (%s): %s\n", plan.Name, notice)
				}

				result, err := engine.Run(plan)
				if err != nil {
					return fmt.Errorf("plan %s: %w", plan.Name, err)
				}
				if err := output.GenerateReport(result, format, os.Stdout); err != nil {
					return err
				}
				if db != nil {
					id, err := db.SaveRun(result)
					if err != nil {
						return fmt.Errorf("failed to save plan %s: %w", plan.Name, err)
					}
					fmt.Fprintf(os.Stderr, "saved run %d (%s)\n", id, plan.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "console", "Output format: console, csv, json")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable engine debug logging")
	cmd.Flags().BoolVar(&save, "save", false, "Persist results to the history database")
	cmd.Flags().StringVar(&dbPath, "db", "pensim.db", "History database path")
	return cmd
}

func lumpSumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lumpsum [plan-file]",
		Short: "Compare the lump-sum withdrawal against the annuity payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			pf, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			for i := range pf.Plans {
				result, err := engine.Run(&pf.Plans[i])
				if err != nil {
					return fmt.Errorf("plan %s: %w", pf.Plans[i].Name, err)
				}
				fmt.Printf("%s: ending balance %s\n", result.Input.Name,
					output.FormatCurrency(result.EndingAccumulationBalance))
				fmt.Printf("  lump sum (%s): tax %s, after tax %s\n",
					result.Input.LumpSumStrategy,
					output.FormatCurrency(result.LumpSum.Tax),
					output.FormatCurrency(result.LumpSum.AfterTaxAmount))
				fmt.Printf("  annuity over %d years: tax %s, after tax %s\n",
					len(result.PayoutLedger),
					output.FormatCurrency(result.TotalTaxPaid),
					output.FormatCurrency(result.TotalAfterTax))
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved simulation runs",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "pensim.db", "History database path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no saved runs")
				return nil
			}
			fmt.Printf("%4s  %-20s  %-20s  %6s  %16s  %16s\n",
				"ID", "Name", "Saved", "Years", "Ending Balance", "Total After Tax")
			for _, r := range runs {
				fmt.Printf("%4d  %-20s  %-20s  %6d  %16s  %16s\n",
					r.ID, r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.PayoutYears,
					output.FormatCurrency(r.EndingBalance),
					output.FormatCurrency(r.TotalAfterTax))
			}
			return nil
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Re-render a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := db.LoadRun(id)
			if err != nil {
				return err
			}
			return output.GenerateReport(result, format, os.Stdout)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "console", "Output format: console, csv, json")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [plan-file]",
		Short: "Browse simulation results interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

func exampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config",
		Short: "Print a starter plan file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(config.ExampleConfig())
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "pensim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.AddCommand(
		calculateCmd(),
		lumpSumCmd(),
		historyCmd(),
		tuiCmd(),
		exampleConfigCmd(),
		versionCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
