package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/janisto/huma-feed/internal/platform/auth"
)

// NewTokenCommand issues tokens for servers running with AUTH_MODE=jwt.
func NewTokenCommand(_ *RootOptions) *cobra.Command {
	env := viper.New()
	env.AutomaticEnv()
	env.SetDefault("JWT_ISSUER", "huma-feed")

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage development tokens",
	}

	var (
		user   auth.User
		secret string
		issuer string
		ttl    time.Duration
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue an HS256 token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(secret) < 32 {
				return fmt.Errorf("%w: secret must be at least 32 bytes", errInvalidInput)
			}
			if ttl <= 0 {
				return fmt.Errorf("%w: ttl must be positive", errInvalidInput)
			}
			token, err := auth.NewJWTVerifier([]byte(secret), issuer).Issue(user, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	issue.Flags().StringVar(&user.UID, "uid", "", "user id (subject)")
	issue.Flags().StringVar(&user.Email, "email", "", "email claim")
	issue.Flags().BoolVar(&user.EmailVerified, "email-verified", true, "email_verified claim")
	issue.Flags().StringVar(&secret, "secret", env.GetString("JWT_SECRET"), "signing secret (env JWT_SECRET)")
	issue.Flags().StringVar(&issuer, "issuer", env.GetString("JWT_ISSUER"), "issuer claim (env JWT_ISSUER)")
	issue.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = issue.MarkFlagRequired("uid")

	cmd.AddCommand(issue)
	return cmd
}
