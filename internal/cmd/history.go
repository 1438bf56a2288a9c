package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dnacount/internal/history"
)

// NewHistoryCmd creates and returns the history subcommand for the dnacount CLI.
// It lists runs recorded with --history and shows their per-file results.
func NewHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with --history, newest first.

The database is taken from --db, or from history_db in the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID\tSTARTED\tPATTERN\tTOTAL\tFILES\tFAILED\tDIRECTORY")
			for _, r := range runs {
				failed := fmt.Sprintf("%d", r.FailedCount)
				if r.Interrupted {
					failed += " (interrupted)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.Pattern, r.Total, r.FileCount, failed, r.Directory)
			}
			return w.Flush()
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "History database path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list (0 = all)")

	cmd.AddCommand(newHistoryShowCmd(&dbPath))

	return cmd
}

func newHistoryShowCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the per-file counts of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", run.ID)
			fmt.Fprintf(out, "  Directory: %s\n", run.Directory)
			fmt.Fprintf(out, "  Pattern:   %s\n", run.Pattern)
			fmt.Fprintf(out, "  Started:   %s (%s)\n", run.StartedAt.Local().Format(time.DateTime), run.Duration)
			fmt.Fprintf(out, "  Total:     %d\n\n", run.Total)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tCOUNT\tERROR")
			for _, f := range run.Files {
				fmt.Fprintf(w, "%s\t%d\t%s\n", f.Path, f.Count, f.Error)
			}
			return w.Flush()
		},
	}
}

func openHistory(cmd *cobra.Command, dbPath string) (*history.Store, error) {
	if dbPath == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.HistoryDB
	}
	if dbPath == "" {
		return nil, errors.New("no history database: pass --db or set history_db in the configuration file")
	}
	cmd.SilenceUsage = true
	return history.NewStore(dbPath)
}
