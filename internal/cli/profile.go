package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/huma-feed/internal/client"
)

// NewProfileCommand groups profile operations.
func NewProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or manage profiles",
	}
	cmd.AddCommand(newProfileShowCommand(opts))
	cmd.AddCommand(newProfileEditCommand(opts))
	cmd.AddCommand(newProfileCreateCommand(opts))
	return cmd
}

func newProfileShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show a profile; your own when no user is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := ""
			if len(args) == 1 {
				userID = args[0]
			}
			p := newPrinter(opts, cmd)
			view := client.NewProfileView(opts.NewAPI(opts), p, "", userID)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			if view.NotFound() {
				return p.text("Profile not found.\n")
			}
			return p.profile(view.Profile(), view.PostCount())
		},
	}
}

func newProfileEditCommand(opts *RootOptions) *cobra.Command {
	var (
		name     string
		bio      string
		clearBio bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change your name or bio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("bio") && !clearBio {
				return fmt.Errorf("%w: nothing to change; pass --name, --bio or --clear-bio", errInvalidInput)
			}
			if clearBio && flags.Changed("bio") {
				return fmt.Errorf("%w: --bio and --clear-bio are mutually exclusive", errInvalidInput)
			}

			p := newPrinter(opts, cmd)
			view := client.NewProfileView(opts.NewAPI(opts), p, "", "")
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			if view.NotFound() {
				return fmt.Errorf("%w: run 'feedctl profile create' first", client.ErrNotFound)
			}
			if err := view.BeginEdit(); err != nil {
				return err
			}

			draft, _ := view.Draft()
			if flags.Changed("name") {
				draft.FullName = name
			}
			if flags.Changed("bio") {
				draft.Bio = bio
			}
			if clearBio {
				draft.Bio = ""
			}
			if err := view.SetDraft(draft); err != nil {
				return err
			}
			if err := view.Save(cmd.Context()); err != nil {
				return err
			}
			return p.profile(view.Profile(), view.PostCount())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new full name")
	cmd.Flags().StringVar(&bio, "bio", "", "new bio")
	cmd.Flags().BoolVar(&clearBio, "clear-bio", false, "remove the bio")
	return cmd
}

func newProfileCreateCommand(opts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create your profile on first login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd)
			prof, err := opts.NewAPI(opts).ProvisionProfile(cmd.Context(), name)
			if err != nil {
				return err
			}
			p.Notify(client.Notice{Kind: client.NoticeSuccess, Title: "Profile created", Message: prof.UserID})
			return p.profile(prof, 0)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
