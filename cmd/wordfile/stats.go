package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Talha76/memorize-words/internal/scoring"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Show mastery and pool of every pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WORD\tTRANSLATION\tCORRECT\tWRONG\tMASTERY\tPOOL")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.0f%%\t%s\n",
				r.Primary, r.Secondary, r.Correct, r.Wrong, scoring.Mastery(r), scoring.Classify(r))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		s := scoring.Summarize(records)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d pairs: %d low score, %d high score\n", s.Total, s.Low, s.High)
		fmt.Fprintf(cmd.OutOrStdout(), "%d answers, %.1f%% correct\n", s.Attempts, s.OverallAccuracy)
		return nil
	},
}
