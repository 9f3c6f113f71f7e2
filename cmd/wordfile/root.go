package main

import (
	"fmt"
	"os"

	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/wordfile"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "wordfile",
	Short:        "Inspect and normalize word pair files",
	Long:         "wordfile checks, summarizes and reformats files in the '[correct,wrong] word = translation' format.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fmtCmd)
}

// readRecords parses the word file at path
func readRecords(path string) ([]domain.PairRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.FileReadError{Err: err}
	}

	records, err := wordfile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
