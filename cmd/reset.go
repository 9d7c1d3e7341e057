package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new conversation, or with --all reset all learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")
		if all && !yes {
			return errors.New("--all deletes the profile, exercises and vocabulary; pass --yes to confirm")
		}

		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := contextOf(cmd)
		if all {
			e.tutor.ClearAll(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "All learner data has been reset.")
			return nil
		}
		e.tutor.ClearSession(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), "Conversation cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also reset the profile, exercises and vocabulary")
	resetCmd.Flags().Bool("yes", false, "Confirm --all")
}
