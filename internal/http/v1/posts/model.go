package posts

import (
	"github.com/janisto/huma-feed/internal/platform/timeutil"
)

// Post is a newly published post.
type Post struct {
	ID           string        `json:"id"           doc:"Post identifier"           example:"01927c4e-8f2a-7b3c-9d1e-2f3a4b5c6d7e"`
	Content      string        `json:"content"      doc:"Post text"                 example:"Hello, world"`
	AuthorUserID string        `json:"authorUserId" doc:"User ID of the author"     example:"user-123"`
	CreatedAt    timeutil.Time `json:"createdAt"    doc:"Publication timestamp"     example:"2024-01-15T10:30:00.000000Z"`
}

// PostCreateInput for POST /posts
type PostCreateInput struct {
	Body struct {
		Content string `json:"content" required:"true" doc:"Post text; 1 to 500 characters after trimming" example:"Hello, world"`
	}
}

// PostCreateOutput for POST /posts (201 Created)
type PostCreateOutput struct {
	Body Post
}
