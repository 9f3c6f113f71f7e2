package main

import (
	"fmt"
	"os"

	"github.com/Talha76/memorize-words/internal/wordfile"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Rewrite a word file in canonical form",
	Long:  "fmt parses FILE and writes it back with stats on every line. Missing stats become [0,0].",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}

		text := wordfile.Serialize(records)

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		return os.WriteFile(out, []byte(text), 0o644)
	},
}

func init() {
	fmtCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
