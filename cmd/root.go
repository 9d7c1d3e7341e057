package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "langbuddy",
	Short: "AI language tutor for the terminal",
	Long: "LangBuddy: chat with an AI tutor in the language you are learning, practise with exercises\n" +
		"generated from your conversations, and build a vocabulary list with example sentences.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LANGBUDDY_STORE_SQLITE_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Path to a langbuddy.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
