package cmd

import (
	"fmt"
	"os"

	"acmcli/lib/judge"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	flagPage   string
	flagTag    string
	flagSort   string
	flagShowAC bool
)

func init() {
	problemSetCmd.Flags().StringVarP(&flagPage, "page", "p", "", "problem page to list")
	problemSetCmd.Flags().StringVarP(&flagTag, "tag", "t", "", "tag to filter by")
	problemSetCmd.Flags().StringVarP(&flagSort, "sort", "s", string(judge.SortByID), "sort order: id, difficulty or rating")
	problemSetCmd.Flags().BoolVar(&flagShowAC, "show-ac", true, "include problems you already solved")
	rootCmd.AddCommand(problemSetCmd)
}

var problemSetCmd = &cobra.Command{
	Use:   "problem-set",
	Short: "List problems of a page or tag.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		query := judge.ProblemSetQuery{
			Sort:         judge.SortType(flagSort),
			ShowAccepted: boolSetting(cmd, "show-ac", flagShowAC, cfg.showAccepted()),
		}
		if flagPage != "" {
			page, err := api.PageByID(ctx, flagPage)
			if err != nil {
				return err
			}
			query.Page = page.ID
		}
		if flagTag != "" {
			tag, err := api.TagByID(ctx, flagTag)
			if err != nil {
				return err
			}
			query.Tag = tag.ID
		}

		problems, err := api.ProblemSet(ctx, query)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"", "#", "Title", "Source", "Solved", "Difficulty"})
		for _, p := range problems {
			mark := ""
			if p.Accepted != nil {
				if *p.Accepted {
					mark = "✔"
				} else {
					mark = "-"
				}
			}
			t.AppendRow(table.Row{mark, p.Number, p.Title, p.Source, p.RatingLength, p.Difficulty})
		}
		t.Render()

		fmt.Printf("%d problems\n", len(problems))
		return nil
	},
}
