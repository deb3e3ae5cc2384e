package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(sourceCmd)
}

var sourceCmd = &cobra.Command{
	Use:   "submit-source <submit-id>",
	Short: "Print the source code of one of your submissions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// the source endpoint re-checks the password even for an
		// already authenticated session
		if cfg.Password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}
			cfg.Password = string(password)

			authKey, err := api.AuthKey()
			if err != nil {
				return err
			}
			if err := api.LoginLocal(ctx, cfg.JudgeID, cfg.Password, authKey); err != nil {
				return err
			}
		}

		source, err := api.SubmitSource(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(source)
		return nil
	},
}
