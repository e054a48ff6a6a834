// Package client keeps view state consistent with the feed API: it fetches
// feeds and profiles, submits posts and profile edits, and reports outcomes
// as notices. Rendering is left to the caller.
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Entry is a feed entry as returned by the API.
type Entry struct {
	PostID         string    `json:"postId"`
	Content        string    `json:"content"`
	AuthorUserID   string    `json:"authorUserId"`
	AuthorName     string    `json:"authorName"`
	AuthorEmail    string    `json:"authorEmail"`
	AuthorInitials string    `json:"authorInitials"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Post is a newly created post.
type Post struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	AuthorUserID string    `json:"authorUserId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is a user profile.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio"`
	PostCount int       `json:"postCount"` // zero when the server reports null
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// API is the server surface the views depend on.
type API interface {
	CreatePost(ctx context.Context, content string) (*Post, error)
	GlobalFeed(ctx context.Context) ([]Entry, error)
	UserFeed(ctx context.Context, userID string) ([]Entry, error)
	// GetProfile loads userID's profile, or the caller's own when userID is empty.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, fullName string, bio *string) (*Profile, error)
	ProvisionProfile(ctx context.Context, fullName string) (*Profile, error)
}

// Errors matched by APIError.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("service unavailable")
)

// FieldError is one entry of a problem's errors array.
type FieldError struct {
	Message  string `json:"message"`
	Location string `json:"location"`
}

// Field returns the location without its "body." prefix.
func (f FieldError) Field() string {
	return strings.TrimPrefix(f.Location, "body.")
}

// APIError is a non-2xx response decoded from RFC 9457 problem details.
type APIError struct {
	Status int          `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Title != "" {
		return e.Title
	}
	return http.StatusText(e.Status)
}

// Is maps the status code onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrValidation:
		return e.Status == http.StatusUnprocessableEntity || e.Status == http.StatusBadRequest
	case ErrUnavailable:
		return e.Status == http.StatusServiceUnavailable
	}
	return false
}
