package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	shared "github.com/fitai/fitai-server/pkg"
	"github.com/fitai/fitai-server/pkg/auth"
)

var (
	tokenSecret string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a development x-auth-token for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "signing secret (default $"+shared.SecretJWT+")")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	secret := tokenSecret
	if secret == "" {
		secret = os.Getenv(shared.SecretJWT)
	}
	if secret == "" {
		return fmt.Errorf("no signing secret: pass --secret or set %s", shared.SecretJWT)
	}

	token, err := auth.Issue(secret, args[0], tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
