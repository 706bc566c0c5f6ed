// Command admin-token mints a bearer token for the /api/v1/admin routes,
// signed with the server's JWT_SECRET.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"partyPredictor/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		secret  string
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Mint a JWT for the admin API",
		Long: `admin-token signs an HS256 token that the server's admin routes accept.

The secret defaults to JWT_SECRET from the environment or a .env file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("missing secret: set JWT_SECRET or pass --secret")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}

			token, err := utils.GenerateJWT(secret, subject, role, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC secret shared with the server")
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject recorded as user_id")
	cmd.Flags().StringVar(&role, "role", "admin", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
