package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janisto/huma-feed/internal/client"
	"github.com/janisto/huma-feed/internal/service/mutation"
)

var errInvalidInput = errors.New("invalid input")

// NewFeedCommand prints the global feed.
func NewFeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the global feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd)
			return showFeed(cmd.Context(), p, client.NewFeedView(opts.NewAPI(opts), p))
		},
	}
}

// NewUserCommand groups per-user reads.
func NewUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect another user",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "posts <user-id>",
		Short: "Show a user's posts, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd)
			return showFeed(cmd.Context(), p, client.NewUserFeedView(opts.NewAPI(opts), p, args[0]))
		},
	})
	return cmd
}

func showFeed(ctx context.Context, p *printer, view *client.FeedView) error {
	if err := view.Refresh(ctx); err != nil {
		return err
	}
	return p.entries(view.Entries())
}

// NewPostCommand publishes a post. Arguments are joined with spaces.
func NewPostCommand(opts *RootOptions) *cobra.Command {
	var printFeed bool

	cmd := &cobra.Command{
		Use:   "post <text>...",
		Short: "Publish a post",
		Long: fmt.Sprintf(`Publish a post as the token's user.

The text is trimmed and must be between 1 and %d characters long.`, mutation.MaxContentLength),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd)
			view := client.NewFeedView(opts.NewAPI(opts), p)
			view.SetCompose(strings.Join(args, " "))
			if !view.CanPublish() {
				if view.Remaining() < 0 {
					return fmt.Errorf("%w: post is %d characters too long", errInvalidInput, -view.Remaining())
				}
				return fmt.Errorf("%w: post is empty", errInvalidInput)
			}

			post, err := view.Publish(cmd.Context())
			if err != nil {
				return err
			}
			if printFeed {
				return p.entries(view.Entries())
			}
			return p.post(post)
		},
	}
	cmd.Flags().BoolVar(&printFeed, "show-feed", false, "print the refreshed feed instead of the new post")
	return cmd
}
