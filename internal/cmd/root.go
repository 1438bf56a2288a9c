package cmd

import (
	"github.com/dendrascience/dnacount/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the dnacount CLI.
// The root command itself performs the count; subcommands are utilities.
func NewRootCmd() *cobra.Command {
	opts := &countOptions{}

	rootCmd := &cobra.Command{
		Use:   "dnacount DIRECTORY PATTERN",
		Short: "dnacount - count a sequence pattern across a directory of text files",
		Long: `dnacount counts how many times PATTERN occurs in the files of DIRECTORY.

Every file whose name ends in the input suffix (.txt by default) is scanned by
its own worker, concurrently. Each line is trimmed and blank lines are skipped.
Matching is exact and case-sensitive, and overlapping occurrences all count:
AA occurs 3 times in AAAA.

A file that cannot be read is reported and left out of the total; the other
files are still counted.

Exit status:
  0    success (also when some files failed, unless --strict)
  1    missing arguments or invalid flags/configuration
  2    DIRECTORY is not a directory
  3    no input files in DIRECTORY
  4    some files failed and --strict is set
  130  interrupted`,
		Example: `  dnacount dna_inputs CGTAA
  dnacount -r -v --report run.json dna_inputs CGTAA`,
		Version: version.GetFullVersion(),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args[0], args[1], opts)
		},
	}
	opts.register(rootCmd)

	groupUtilities := "utilities"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	seedCmd := NewSeedCmd()
	historyCmd := NewHistoryCmd()

	seedCmd.GroupID = groupUtilities
	historyCmd.GroupID = groupUtilities

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(historyCmd)

	return rootCmd
}
