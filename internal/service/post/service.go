// Package post stores immutable posts. Every post references an existing
// profile through its author's user ID.
package post

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrConstraintViolation is returned when the author has no profile.
var ErrConstraintViolation = errors.New("post author has no profile")

// Post is an authored piece of text. Posts are never edited or deleted.
type Post struct {
	ID           string
	Content      string
	AuthorUserID string
	CreatedAt    time.Time
}

// NewPost carries the caller-supplied fields of a post. ID and CreatedAt are
// assigned by the store.
type NewPost struct {
	AuthorUserID string
	Content      string
}

// Store persists posts.
//
// Both list operations return posts newest first, ties broken by descending
// ID. A store that cannot list returns an error rather than a partial page.
type Store interface {
	Insert(ctx context.Context, p NewPost) (*Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]Post, error)
}

// NewID returns a time-ordered UUIDv7 so lexical ID order follows insertion
// order among posts sharing a timestamp.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Compare orders posts newest first, then by descending ID.
func Compare(a, b Post) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// Sort orders posts in place with Compare.
func Sort(posts []Post) {
	slices.SortFunc(posts, Compare)
}
