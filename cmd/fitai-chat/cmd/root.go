package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "fitai-chat",
	Short:        "FitAI keyword chatbot",
	Long:         "Ask the FitAI assistant about workouts, nutrition and recovery.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(tokenCmd)
}

// joinArgs lets messages be passed without quoting.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
