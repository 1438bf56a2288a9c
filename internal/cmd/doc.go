// Package cmd provides the command-line interface implementation for dnacount.
//
// It uses the Cobra library for command structure and Fang for styling.
// The root command counts a pattern across a directory:
//
//	dnacount DIRECTORY PATTERN [flags]
//
// Utility subcommands:
//   - seed: generate random sequence files to try the tool on
//   - history: list recorded runs and show their per-file counts
//
// Each command has its own constructor returning a *cobra.Command.
// Errors that need a specific process exit status are returned as *ExitError;
// ExitCode turns any returned error into the status main exits with.
package cmd
