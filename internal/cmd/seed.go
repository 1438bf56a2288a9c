package cmd

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const bases = "ACGT"

// NewSeedCmd creates and returns the seed subcommand for the dnacount CLI.
// It generates random sequence files to run dnacount against.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		lineCount  int
		lineLength int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random sequence files",
		Long: `Generate random DNA sequence files for trying out dnacount.

Each file is named <uuid>.txt and holds lines of random A, C, G and T bases.
About one line in ten is left blank, since blank lines must be skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			paths, err := seedFiles(outputPath, fileCount, lineCount, lineLength)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if verbose {
				for _, p := range paths {
					fmt.Fprintf(out, "created %s\n", p)
				}
			}
			fmt.Fprintf(out, "Created %d files in %s\n", len(paths), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10, "Number of files to generate")
	cmd.Flags().IntVarP(&lineCount, "lines", "l", 100, "Lines per file")
	cmd.Flags().IntVar(&lineLength, "line-length", 60, "Bases per line")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every generated file")

	cmd.MarkFlagRequired("output")

	return cmd
}

// seedFiles writes fileCount random sequence files into dir and returns their paths.
func seedFiles(dir string, fileCount, lineCount, lineLength int) ([]string, error) {
	if fileCount < 0 || lineCount < 0 || lineLength < 1 {
		return nil, fmt.Errorf("invalid seed sizes: count=%d lines=%d line-length=%d", fileCount, lineCount, lineLength)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, fileCount)
	for range fileCount {
		content, err := randomSequenceFile(lineCount, lineLength)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, uuid.New().String()+".txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return paths, fmt.Errorf("failed to write file %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func randomSequenceFile(lineCount, lineLength int) (string, error) {
	buf := make([]byte, lineLength+1)
	var b strings.Builder
	b.Grow(lineCount * (lineLength + 1))
	for range lineCount {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		// the extra byte decides whether the line is blank
		if buf[lineLength] < 26 {
			b.WriteByte('\n')
			continue
		}
		for _, r := range buf[:lineLength] {
			b.WriteByte(bases[r&3])
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
