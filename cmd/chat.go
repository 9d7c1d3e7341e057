package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

// runChat builds the environment and launches the TUI.
func runChat(cmd *cobra.Command) error {
	e, err := setup(cmd, envOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(contextOf(cmd), app.Options{Tutor: e.tutor, Log: e.log})
}
