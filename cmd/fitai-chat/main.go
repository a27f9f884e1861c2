// fitai-chat answers fitness questions from the terminal using the same
// keyword responder as the Chat function.
package main

import (
	"os"

	"github.com/fitai/fitai-server/cmd/fitai-chat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
