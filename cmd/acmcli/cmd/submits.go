package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var flagSubmitsCount int

func init() {
	submitsCmd.Flags().IntVarP(&flagSubmitsCount, "count", "c", 0, "number of submissions to list")
	rootCmd.AddCommand(submitsCmd)
}

var submitsCmd = &cobra.Command{
	Use:   "problem-submits <problem>",
	Short: "List your recent submissions for a problem.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		problem, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("problem number must be numeric, got %q", args[0])
		}
		count := flagSubmitsCount
		if count <= 0 {
			count = cfg.SubmitsCount
		}

		submits, err := api.ProblemSubmits(ctx, problem, count)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Submit", "Date", "Language", "Status"})
		for _, s := range submits {
			t.AppendRow(table.Row{s.SubmitID, s.Date, s.Language, statusString(s)})
		}
		t.Render()

		return nil
	},
}
