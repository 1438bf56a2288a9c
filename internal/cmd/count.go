package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dnacount/count"
	"github.com/dendrascience/dnacount/internal/config"
	"github.com/dendrascience/dnacount/internal/history"
	"github.com/dendrascience/dnacount/internal/logger"
	"github.com/dendrascience/dnacount/internal/report"
)

type countOptions struct {
	suffix     string
	recursive  bool
	maxWorkers int
	timeout    time.Duration
	logLevel   string
	historyDB  string
	strict     bool
	verbose    bool
	reportPath string
}

func (o *countOptions) register(cmd *cobra.Command) {
	defaults := config.DefaultConfig()

	cmd.PersistentFlags().String("config", config.DefaultPath, "Path to YAML configuration file")

	flags := cmd.Flags()
	flags.StringVar(&o.suffix, "suffix", defaults.Suffix, "Name suffix of input files")
	flags.BoolVarP(&o.recursive, "recursive", "r", defaults.Recursive, "Include files in subdirectories")
	flags.IntVar(&o.maxWorkers, "max-workers", defaults.MaxWorkers, "Maximum files scanned at once (0 = no limit)")
	flags.DurationVar(&o.timeout, "timeout", defaults.Timeout, "Maximum time to scan one file (0 = no limit)")
	flags.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&o.historyDB, "history", defaults.HistoryDB, "Record the run in this SQLite database")
	flags.BoolVar(&o.strict, "strict", defaults.Strict, "Exit with status 4 when any file fails")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Print the count of every file")
	flags.StringVarP(&o.reportPath, "report", "o", "", "Write a JSON (or .yaml) report to this path")
}

// loadConfig reads the file named by --config. A missing file yields the
// defaults unless it was named explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// resolve merges explicitly set flags over the configuration file.
func (o *countOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("suffix") {
		cfg.Suffix = o.suffix
	}
	if flags.Changed("recursive") {
		cfg.Recursive = o.recursive
	}
	if flags.Changed("max-workers") {
		cfg.MaxWorkers = o.maxWorkers
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("history") {
		cfg.HistoryDB = o.historyDB
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runCount(cmd *cobra.Command, dir, pattern string, opts *countOptions) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	files, err := count.Discover(dir, cfg.Suffix, cfg.Recursive)
	switch {
	case errors.Is(err, count.ErrNotDirectory):
		return &ExitError{Code: ExitNotDirectory, Err: err}
	case errors.Is(err, count.ErrNoInputFiles):
		return &ExitError{Code: ExitNoInputFiles, Err: err}
	case err != nil:
		return err
	}
	log.LogDebug(fmt.Sprintf("found %d %s files in %s", len(files), cfg.Suffix, dir))

	coordinator := count.NewCoordinator(
		count.WithMaxWorkers(cfg.MaxWorkers),
		count.WithTimeout(cfg.Timeout),
		count.WithLogger(log),
	)
	started := time.Now()
	summary, runErr := coordinator.Run(cmd.Context(), files, pattern)
	elapsed := time.Since(started)

	if opts.verbose {
		for _, r := range summary.Results {
			log.LogFileResult(r)
		}
	}

	run := history.NewRun(dir, summary, started, elapsed)
	// bookkeeping still happens after an interrupt
	saveCtx := context.WithoutCancel(cmd.Context())
	if cfg.HistoryDB != "" {
		if err := recordRun(saveCtx, cfg.HistoryDB, run); err != nil {
			log.LogWarn(fmt.Sprintf("history not recorded: %v", err))
		}
	}
	var reportErr error
	if opts.reportPath != "" {
		rep := report.New(run.ID, dir, summary)
		rep.AddDigests()
		if reportErr = report.Write(opts.reportPath, rep); reportErr != nil {
			log.LogError(fmt.Sprintf("report not written: %v", reportErr))
		}
	}

	if runErr != nil {
		log.LogWarn(fmt.Sprintf("total so far is %d from %d of %d files", summary.Total, len(summary.Results), len(files)))
		if errors.Is(runErr, count.ErrInterrupted) {
			return &ExitError{Code: ExitInterrupted, Err: runErr}
		}
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sequence %s was found %d times.\n", pattern, summary.Total)

	if summary.Failed > 0 {
		log.LogWarn(fmt.Sprintf("total is partial: %d of %d files failed", summary.Failed, len(files)))
		if cfg.Strict {
			return &ExitError{Code: ExitPartial, Err: fmt.Errorf("%d of %d files failed: %w", summary.Failed, len(files), summary.Err())}
		}
	}
	return reportErr
}

func recordRun(ctx context.Context, dbPath string, run history.Run) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(ctx, run)
}
