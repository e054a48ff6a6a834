package feed

import (
	"github.com/janisto/huma-feed/internal/platform/timeutil"
)

// Entry is a post joined with its author's current profile.
type Entry struct {
	PostID         string        `json:"postId"         doc:"Post identifier"            example:"01927c4e-8f2a-7b3c-9d1e-2f3a4b5c6d7e"`
	Content        string        `json:"content"        doc:"Post text"                  example:"Hello, world"`
	AuthorUserID   string        `json:"authorUserId"   doc:"User ID of the author"      example:"user-123"`
	AuthorName     string        `json:"authorName"     doc:"Author full name"           example:"Ada Lovelace"`
	AuthorEmail    string        `json:"authorEmail"    doc:"Author email"               example:"ada@example.com"`
	AuthorInitials string        `json:"authorInitials" doc:"Up to two author initials"  example:"AL"`
	CreatedAt      timeutil.Time `json:"createdAt"      doc:"Publication timestamp"      example:"2024-01-15T10:30:00.000000Z"`
}

// FeedGetInput for GET /feed (no parameters)
type FeedGetInput struct{}

// UserFeedGetInput for GET /users/{userId}/posts
type UserFeedGetInput struct {
	UserID string `path:"userId" minLength:"1" maxLength:"128" doc:"Author user ID" example:"user-123"`
}

// FeedOutput is newest first. An empty feed is an empty array.
type FeedOutput struct {
	Body []Entry
}
