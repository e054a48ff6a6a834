package posts

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/huma-feed/internal/http/v1/apierror"
	"github.com/janisto/huma-feed/internal/platform/auth"
	"github.com/janisto/huma-feed/internal/platform/timeutil"
	postsvc "github.com/janisto/huma-feed/internal/service/post"
)

// Creator publishes posts on behalf of the authenticated user.
type Creator interface {
	CreatePost(ctx context.Context, requester *auth.User, content string) (*postsvc.Post, error)
}

// Register registers post endpoints.
func Register(api huma.API, creator Creator) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-post",
		Method:        http.MethodPost,
		Path:          "/posts",
		Summary:       "Publish a post",
		Description:   "Publishes a post authored by the authenticated user. The caller must have a profile.",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PostCreateInput) (*PostCreateOutput, error) {
		p, err := creator.CreatePost(ctx, auth.UserFromContext(ctx), input.Body.Content)
		if err != nil {
			return nil, apierror.From(ctx, err)
		}
		return &PostCreateOutput{Body: toHTTPPost(p)}, nil
	})
}

func toHTTPPost(p *postsvc.Post) Post {
	return Post{
		ID:           p.ID,
		Content:      p.Content,
		AuthorUserID: p.AuthorUserID,
		CreatedAt:    timeutil.NewTime(p.CreatedAt),
	}
}
