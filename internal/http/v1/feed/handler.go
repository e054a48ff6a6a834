package feed

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/huma-feed/internal/http/v1/apierror"
	"github.com/janisto/huma-feed/internal/platform/timeutil"
	feedsvc "github.com/janisto/huma-feed/internal/service/feed"
)

// Reader answers feed queries.
type Reader interface {
	GlobalFeed(ctx context.Context) ([]feedsvc.Entry, error)
	UserFeed(ctx context.Context, userID string) ([]feedsvc.Entry, error)
}

// Register registers feed endpoints.
func Register(api huma.API, reader Reader) {
	huma.Register(api, huma.Operation{
		OperationID: "get-feed",
		Method:      http.MethodGet,
		Path:        "/feed",
		Summary:     "Get the global feed",
		Description: "Returns every post whose author has a profile, newest first.",
		Tags:        []string{"Feed"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *FeedGetInput) (*FeedOutput, error) {
		entries, err := reader.GlobalFeed(ctx)
		if err != nil {
			return nil, apierror.From(ctx, err)
		}
		return &FeedOutput{Body: toHTTPEntries(entries)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user-feed",
		Method:      http.MethodGet,
		Path:        "/users/{userId}/posts",
		Summary:     "Get a user's posts",
		Description: "Returns the posts authored by a user, newest first. Unknown users have an empty feed.",
		Tags:        []string{"Feed"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *UserFeedGetInput) (*FeedOutput, error) {
		entries, err := reader.UserFeed(ctx, input.UserID)
		if err != nil {
			return nil, apierror.From(ctx, err)
		}
		return &FeedOutput{Body: toHTTPEntries(entries)}, nil
	})
}

func toHTTPEntries(entries []feedsvc.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{
			PostID:         e.PostID,
			Content:        e.Content,
			AuthorUserID:   e.AuthorUserID,
			AuthorName:     e.AuthorName,
			AuthorEmail:    e.AuthorEmail,
			AuthorInitials: e.AuthorInitials(),
			CreatedAt:      timeutil.NewTime(e.CreatedAt),
		}
	}
	return out
}
