package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fitai/fitai-server/pkg/chatbot"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List knowledge entries in scan order",
	Args:  cobra.NoArgs,
	RunE:  runTopics,
}

func runTopics(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tTOPIC\tKEYWORDS")
	for i, e := range chatbot.Default().Entries() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, e.Topic, strings.Join(e.Keywords, ", "))
	}
	return w.Flush()
}
