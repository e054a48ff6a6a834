// Package feed joins posts with their authors' profiles at read time.
package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	applog "github.com/janisto/huma-feed/internal/platform/logging"
)

// ErrQueryFailed wraps any failure of the underlying stores.
var ErrQueryFailed = errors.New("feed query failed")

// Entry is a post joined with its author's display fields.
type Entry struct {
	PostID       string
	Content      string
	AuthorUserID string
	AuthorName   string
	AuthorEmail  string
	CreatedAt    time.Time
}

// AuthorInitials returns up to two upper-cased initials of the author name.
func (e Entry) AuthorInitials() string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(e.AuthorName) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}

// Summary aggregates an author's visible posts.
type Summary struct {
	UserID    string
	PostCount int
	// LatestAt is zero when the author has no posts.
	LatestAt time.Time
}

// Source produces joined entries. Entries whose author profile is missing
// must be left out; order is not required.
type Source interface {
	Global(ctx context.Context) ([]Entry, error)
	ByAuthor(ctx context.Context, userID string) ([]Entry, error)
}

// Service answers feed queries. It never mutates.
type Service struct {
	source Source
}

// NewService creates a feed service over source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// GlobalFeed returns every post with a resolvable author, newest first.
func (s *Service) GlobalFeed(ctx context.Context) ([]Entry, error) {
	entries, err := s.source.Global(ctx)
	if err != nil {
		return nil, s.failed(ctx, "global", err)
	}
	return ordered(entries), nil
}

// UserFeed returns the posts authored by userID, newest first. An unknown
// user yields an empty feed.
func (s *Service) UserFeed(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.source.ByAuthor(ctx, userID)
	if err != nil {
		return nil, s.failed(ctx, "user", err, zap.String("authorUserId", userID))
	}
	return ordered(entries), nil
}

// AuthorSummary counts the entries UserFeed would return for userID.
func (s *Service) AuthorSummary(ctx context.Context, userID string) (Summary, error) {
	entries, err := s.UserFeed(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{UserID: userID, PostCount: len(entries)}
	if len(entries) > 0 {
		sum.LatestAt = entries[0].CreatedAt
	}
	return sum, nil
}

func (s *Service) failed(ctx context.Context, kind string, err error, fields ...zap.Field) error {
	applog.LogError(ctx, "feed query failed", err, append(fields, zap.String("feed", kind))...)
	return fmt.Errorf("%w: %w", ErrQueryFailed, err)
}

// Compare orders entries newest first, then by descending post ID.
func Compare(a, b Entry) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.PostID, a.PostID)
}

func ordered(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	slices.SortFunc(entries, Compare)
	return entries
}
