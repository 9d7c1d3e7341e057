package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message to the tutor and print the reply",
	Long: "Send one message in the current conversation and print the reply. Exercises that come\n" +
		"with the reply replace the active set; list them with `langbuddy exercises`.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		turn, err := e.tutor.Send(contextOf(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if turn == nil {
			return fmt.Errorf("message is empty")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, turn.Assistant.Content)
		if turn.Received {
			fmt.Fprintf(out, "\n%d new exercises. Run `langbuddy exercises` to see them.\n", len(turn.Result.Exercises))
		}
		return nil
	},
}
