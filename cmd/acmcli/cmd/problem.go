package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var flagShowTags bool

func init() {
	problemCmd.Flags().BoolVar(&flagShowTags, "show-tags", false, "show problem tags")
	rootCmd.AddCommand(problemCmd)
}

var problemCmd = &cobra.Command{
	Use:   "problem <problem number>",
	Short: "Show a problem's statement and stats.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid problem number %q", args[0])
		}

		problem, err := api.Problem(cmd.Context(), number)
		if err != nil {
			return err
		}

		mark := ""
		if problem.Accepted != nil {
			if *problem.Accepted {
				mark = "[✔] "
			} else {
				mark = "[-] "
			}
		}
		fmt.Printf("%s%d. %s\n\n", mark, problem.Number, problem.Title)
		fmt.Printf("Time limit: %s, Memory limit: %s\n", problem.TimeLimit, problem.MemoryLimit)

		switch {
		case problem.Author != "" && problem.Source != "":
			fmt.Printf("Source: %s @ %s\n", problem.Author, problem.Source)
		case problem.Author != "":
			fmt.Printf("Source: %s\n", problem.Author)
		case problem.Source != "":
			fmt.Printf("Source: %s\n", problem.Source)
		}
		if boolSetting(cmd, "show-tags", flagShowTags, cfg.showTags()) {
			fmt.Printf("Tags: %s\n", strings.Join(problem.Tags, ", "))
		}
		fmt.Printf("Difficulty: %d\n\n", problem.Difficulty)

		fmt.Printf("%s\n\n", problem.Text)
		fmt.Printf("### Input\n\n%s\n\n", problem.Input)
		fmt.Printf("### Output\n\n%s\n\n", problem.Output)

		heading := "### Sample"
		if len(problem.SampleInputs) > 1 {
			heading = "### Samples"
		}
		fmt.Printf("%s\n\n", heading)
		for i := range problem.SampleInputs {
			fmt.Println("-----> Input <----------------------------------------------------------------")
			fmt.Println(problem.SampleInputs[i])
			fmt.Println("-----> Output <---------------------------------------------------------------")
			fmt.Println(problem.SampleOutputs[i])
		}
		return nil
	},
}
