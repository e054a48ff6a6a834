// Package cli implements feedctl, a command-line client for the feed API.
package cli

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/janisto/huma-feed/internal/client"
)

const defaultAPIURL = "http://localhost:8080/v1"

// ValidFormats are the accepted --format values.
var ValidFormats = []string{"text", "json"}

// RootOptions holds the global flags.
type RootOptions struct {
	APIURL  string
	Token   string
	Format  string
	Timeout time.Duration

	// NewAPI builds the API client; tests replace it.
	NewAPI func(opts *RootOptions) client.API
}

func httpAPI(opts *RootOptions) client.API {
	return client.NewHTTPClient(opts.APIURL,
		client.WithToken(opts.Token),
		client.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
	)
}

// NewRootCommand creates the feedctl command tree. Flag defaults come from
// FEED_API_URL and FEED_TOKEN.
func NewRootCommand() *cobra.Command {
	env := viper.New()
	env.SetEnvPrefix("FEED")
	env.AutomaticEnv()
	env.SetDefault("API_URL", defaultAPIURL)

	opts := &RootOptions{NewAPI: httpAPI}

	cmd := &cobra.Command{
		Use:           "feedctl",
		Short:         "Command-line client for the feed API",
		Long:          "Read the global and per-user feeds, publish posts and manage your profile.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", env.GetString("API_URL"), "API base URL (env FEED_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", env.GetString("TOKEN"), "bearer token (env FEED_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(NewFeedCommand(opts))
	cmd.AddCommand(NewPostCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}
