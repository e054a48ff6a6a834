package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/janisto/huma-feed/internal/client"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, client.ErrValidation), errors.Is(err, errInvalidInput):
		return ExitInvalidInput
	}
	return ExitFailure
}

// printer renders results in the selected format. Notices go to errOut so
// JSON output stays parseable.
type printer struct {
	format string
	out    io.Writer
	errOut io.Writer
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *printer {
	return &printer{format: opts.Format, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

func (p *printer) Notify(n client.Notice) {
	prefix := "ok"
	if n.Kind == client.NoticeFailure {
		prefix = "error"
	}
	fmt.Fprintf(p.errOut, "%s: %s: %s\n", prefix, n.Title, n.Message)
	for _, field := range slices.Sorted(maps.Keys(n.Fields)) {
		fmt.Fprintf(p.errOut, "  %s: %s\n", field, n.Fields[field])
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) entries(entries []client.Entry) error {
	if p.format == "json" {
		return p.json(entries)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.out, "No posts yet.")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(p.out, "[%s] %s <%s> %s\n  %s\n",
			e.AuthorInitials, e.AuthorName, e.AuthorEmail, e.CreatedAt.Local().Format(time.DateTime), e.Content); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) post(post *client.Post) error {
	if p.format == "json" {
		return p.json(post)
	}
	_, err := fmt.Fprintf(p.out, "Published %s at %s\n", post.ID, post.CreatedAt.Local().Format(time.DateTime))
	return err
}

func (p *printer) profile(prof *client.Profile, postCount int) error {
	if p.format == "json" {
		out := *prof
		out.PostCount = postCount
		return p.json(out)
	}
	bio := "-"
	if prof.Bio != nil {
		bio = *prof.Bio
	}
	_, err := fmt.Fprintf(p.out, "%s <%s>\nUser:   %s\nBio:    %s\nPosts:  %d\nJoined: %s\n",
		prof.FullName, prof.Email, prof.UserID, bio, postCount, prof.CreatedAt.Local().Format(time.DateOnly))
	return err
}

func (p *printer) text(format string, args ...any) error {
	if p.format == "json" {
		return nil
	}
	_, err := fmt.Fprintf(p.out, format, args...)
	return err
}
