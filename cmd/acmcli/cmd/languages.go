package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(pagesCmd)
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the compilers the judge accepts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		languages, err := api.Languages(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range languages {
			fmt.Printf("%s\t%s\n", l.ID, l.Description)
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the problem tags.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := api.Tags(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("%s\t%s\n", t.ID, t.Description)
		}
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the problem-set pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := api.Pages(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range pages {
			fmt.Printf("%s\t%s\n", p.ID, p.Description)
		}
		return nil
	},
}
