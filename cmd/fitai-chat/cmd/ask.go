package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitai/fitai-server/pkg/chatbot"
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Print the assistant's reply to a message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), chatbot.Respond(joinArgs(args)))
	return nil
}
