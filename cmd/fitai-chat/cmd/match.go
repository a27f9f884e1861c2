package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitai/fitai-server/pkg/chatbot"
)

var matchCmd = &cobra.Command{
	Use:   "match <message...>",
	Short: "Show which knowledge entry a message selects and its score",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	responder := chatbot.Default()
	m := responder.Match(joinArgs(args))

	out := cmd.OutOrStdout()
	entry, ok := responder.Entry(m.Index)
	if !m.Matched() || !ok {
		fmt.Fprintf(out, "no match (score 0), fallback reply\n")
		return nil
	}
	fmt.Fprintf(out, "index=%d topic=%s score=%d\n", m.Index, entry.Topic, m.Score)
	return nil
}
