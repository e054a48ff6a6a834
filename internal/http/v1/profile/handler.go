package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/huma-feed/internal/http/v1/apierror"
	"github.com/janisto/huma-feed/internal/platform/auth"
	applog "github.com/janisto/huma-feed/internal/platform/logging"
	"github.com/janisto/huma-feed/internal/platform/timeutil"
	feedsvc "github.com/janisto/huma-feed/internal/service/feed"
	"github.com/janisto/huma-feed/internal/service/mutation"
	profilesvc "github.com/janisto/huma-feed/internal/service/profile"
)

// Reader loads profiles by user ID.
type Reader interface {
	Get(ctx context.Context, userID string) (*profilesvc.Profile, error)
}

// Editor performs the authenticated profile writes.
type Editor interface {
	ProvisionProfile(ctx context.Context, requester *auth.User, fullName string) (*profilesvc.Profile, error)
	UpdateProfile(ctx context.Context, requester *auth.User, changes mutation.ProfileChanges) (*profilesvc.Profile, error)
}

// Summarizer reports per-author post counts.
type Summarizer interface {
	AuthorSummary(ctx context.Context, userID string) (feedsvc.Summary, error)
}

type handler struct {
	profiles  Reader
	editor    Editor
	summaries Summarizer
}

// Register registers profile endpoints.
func Register(api huma.API, profiles Reader, editor Editor, summaries Summarizer) {
	h := &handler{profiles: profiles, editor: editor, summaries: summaries}
	security := []map[string][]string{{"bearerAuth": {}}}

	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profile",
		Summary:       "Create the current user's profile",
		Description:   "Provisions a profile for the authenticated user. The email is taken from the token.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreateOutput, error) {
		p, err := h.editor.ProvisionProfile(ctx, auth.UserFromContext(ctx), input.Body.FullName)
		if err != nil {
			return nil, apierror.From(ctx, err)
		}
		return &ProfileCreateOutput{
			Location: "/v1/profile",
			Body:     toHTTPProfile(p, 0),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the current user's profile",
		Tags:        []string{"Profile"},
		Security:    security,
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileOutput, error) {
		return h.get(ctx, auth.UserFromContext(ctx).UID)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user-profile",
		Method:      http.MethodGet,
		Path:        "/users/{userId}/profile",
		Summary:     "Get a user's profile",
		Tags:        []string{"Profile"},
		Security:    security,
	}, func(ctx context.Context, input *UserProfileGetInput) (*ProfileOutput, error) {
		return h.get(ctx, input.UserID)
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profile",
		Summary:     "Update the current user's profile",
		Description: "Replaces the full name and bio. Concurrent updates are last-write-wins.",
		Tags:        []string{"Profile"},
		Security:    security,
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileOutput, error) {
		p, err := h.editor.UpdateProfile(ctx, auth.UserFromContext(ctx), mutation.ProfileChanges{
			FullName: input.Body.FullName,
			Bio:      input.Body.Bio,
		})
		if err != nil {
			return nil, apierror.From(ctx, err)
		}
		return h.render(ctx, p)
	})
}

func (h *handler) get(ctx context.Context, userID string) (*ProfileOutput, error) {
	p, err := h.profiles.Get(ctx, userID)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return h.render(ctx, p)
}

// render adds the author's post count. The profile itself is already read or
// committed, so a failed count is logged and reported as a null postCount
// instead of failing the request.
func (h *handler) render(ctx context.Context, p *profilesvc.Profile) (*ProfileOutput, error) {
	out := toHTTPProfile(p, 0)
	sum, err := h.summaries.AuthorSummary(ctx, p.UserID)
	if err != nil {
		applog.LogWarn(ctx, "post count unavailable", zap.String("userId", p.UserID), zap.Error(err))
		out.PostCount = nil
	} else {
		out.PostCount = &sum.PostCount
	}
	return &ProfileOutput{Body: out}, nil
}

func toHTTPProfile(p *profilesvc.Profile, postCount int) Profile {
	return Profile{
		ID:        p.ID,
		UserID:    p.UserID,
		FullName:  p.FullName,
		Email:     p.Email,
		Bio:       p.Bio,
		PostCount: &postCount,
		CreatedAt: timeutil.NewTime(p.CreatedAt),
		UpdatedAt: timeutil.NewTime(p.UpdatedAt),
	}
}
