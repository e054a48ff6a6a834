// Package mutation validates and authorizes writes before they reach the
// stores. Every write is attributed to the authenticated requester; callers
// cannot name another user as the target.
package mutation

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/huma-feed/internal/platform/auth"
	applog "github.com/janisto/huma-feed/internal/platform/logging"
	"github.com/janisto/huma-feed/internal/service/post"
	"github.com/janisto/huma-feed/internal/service/profile"
)

// ProfileChanges are the user-editable profile fields. A nil or empty Bio
// clears the bio.
type ProfileChanges struct {
	FullName string
	Bio      *string
}

// Coordinator performs post creation and profile edits.
type Coordinator struct {
	posts    post.Store
	profiles profile.Store
	validate *validator.Validate
}

// NewCoordinator creates a coordinator writing to the given stores.
func NewCoordinator(posts post.Store, profiles profile.Store) *Coordinator {
	return &Coordinator{posts: posts, profiles: profiles, validate: newValidator()}
}

func requesterID(requester *auth.User) (string, error) {
	if requester == nil || requester.UID == "" {
		return "", ErrUnauthenticated
	}
	return requester.UID, nil
}

// CreatePost publishes trimmed content as the requester.
func (c *Coordinator) CreatePost(ctx context.Context, requester *auth.User, content string) (*post.Post, error) {
	uid, err := requesterID(requester)
	if err != nil {
		return nil, err
	}

	in := postInput{Content: clean(content)}
	if err := check(c.validate, in); err != nil {
		return nil, err
	}

	p, err := c.posts.Insert(ctx, post.NewPost{AuthorUserID: uid, Content: in.Content})
	if err != nil {
		audit(ctx, "create", uid, "post", "", err)
		return nil, err
	}
	audit(ctx, "create", uid, "post", p.ID, nil)
	return p, nil
}

// UpdateProfile replaces the requester's full name and bio. Concurrent
// updates are last-write-wins.
func (c *Coordinator) UpdateProfile(ctx context.Context, requester *auth.User, changes ProfileChanges) (*profile.Profile, error) {
	uid, err := requesterID(requester)
	if err != nil {
		return nil, err
	}

	in := profileInput{FullName: clean(changes.FullName)}
	if err := check(c.validate, in); err != nil {
		return nil, err
	}

	p, err := c.profiles.Update(ctx, uid, profile.UpdateParams{
		FullName: in.FullName,
		Bio:      cleanBio(changes.Bio),
	})
	if err != nil {
		audit(ctx, "update", uid, "profile", uid, err)
		return nil, err
	}
	audit(ctx, "update", uid, "profile", uid, nil)
	return p, nil
}

// ProvisionProfile creates the requester's profile on first sign-in, taking
// the email from the verified identity.
func (c *Coordinator) ProvisionProfile(ctx context.Context, requester *auth.User, fullName string) (*profile.Profile, error) {
	uid, err := requesterID(requester)
	if err != nil {
		return nil, err
	}

	in := provisionInput{FullName: clean(fullName), Email: requester.Email}
	if err := check(c.validate, in); err != nil {
		return nil, err
	}

	p, err := c.profiles.Create(ctx, uid, profile.CreateParams{FullName: in.FullName, Email: in.Email})
	if err != nil {
		audit(ctx, "create", uid, "profile", uid, err)
		return nil, err
	}
	audit(ctx, "create", uid, "profile", uid, nil)
	return p, nil
}

func cleanBio(bio *string) *string {
	if bio == nil {
		return nil
	}
	b := clean(*bio)
	if b == "" {
		return nil
	}
	return &b
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return "not_found"
	case errors.Is(err, profile.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, post.ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal_error"
	}
}

func audit(ctx context.Context, action, actor, resourceType, resourceID string, err error) {
	ev := applog.AuditEvent{
		Action:       action,
		Actor:        actor,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Result:       applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAudit(ctx, ev)
}
