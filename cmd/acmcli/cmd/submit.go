package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"acmcli/lib/judge"
	"acmcli/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/spf13/cobra"
)

var (
	flagSourceFile string
	flagLanguage   string
)

func init() {
	submitCmd.Flags().StringVarP(&flagSourceFile, "source-file", "s", "", "solution source file")
	submitCmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "language to submit as")
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit <problem number>",
	Short: "Submit a solution and watch its verdict.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid problem number %q", args[0])
		}

		sourceFile := flagSourceFile
		if sourceFile == "" {
			sourceFile = cfg.DefaultSourceFile
		}
		source, err := os.ReadFile(expandHome(sourceFile))
		if err != nil {
			return err
		}

		languageName := flagLanguage
		if languageName == "" {
			languageName = cfg.Language
		}
		languages, err := api.Languages(ctx)
		if err != nil {
			return err
		}
		language, err := textutil.ResolveLanguage(languageName, languages)
		if err != nil {
			return err
		}

		pw := progress.NewWriter()
		pw.SetUpdateFrequency(100 * time.Millisecond)
		pw.SetTrackerLength(1)
		pw.Style().Visibility.Percentage = false
		pw.Style().Visibility.Value = false
		pw.Style().Visibility.Time = false
		go pw.Render()

		tracker := &progress.Tracker{Message: "Please wait. Your submit in process..."}
		pw.AppendTracker(tracker)

		submitID, err := api.Submit(ctx, cfg.JudgeID, language.ID, number, string(source))
		if errors.Is(err, judge.ErrSubmitTimeout) {
			tracker.UpdateMessage("Submit failed. Try again later.")
			tracker.MarkAsErrored()
			pw.Stop()
			return err
		}
		if err != nil {
			tracker.MarkAsErrored()
			pw.Stop()
			return err
		}

		announced := false
		status, err := judge.Poll(ctx, api, submitID, judge.DefaultPollInterval, func(s judge.SubmitStatus) {
			if !announced {
				announced = true
				pw.Log("Submit of problem %q on language %s. Submit id: %s", s.Problem, s.Language, s.SubmitID)
			}
			tracker.UpdateMessage(statusString(s))
		})
		if err != nil {
			tracker.MarkAsErrored()
			pw.Stop()
			return err
		}
		tracker.MarkAsDone()
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}

		fmt.Println(statusString(status))

		// the status page never carries the full compiler output
		if status.CompilationError() {
			log, err := api.CompilationError(ctx, submitID)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println("Compilation error log:")
			fmt.Println()
			fmt.Println(log)
		}
		return nil
	},
}
