package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/huma-feed/internal/service/post"
	"github.com/janisto/huma-feed/internal/service/profile"
)

type fixture struct {
	profiles *profile.MemoryStore
	posts    *post.MemoryStore
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := profile.NewMemoryStore()
	posts := post.NewMemoryStore(profiles)
	return &fixture{
		profiles: profiles,
		posts:    posts,
		svc:      NewService(NewStoreSource(posts, profiles)),
	}
}

func (f *fixture) profile(t *testing.T, userID, name string) {
	t.Helper()
	_, err := f.profiles.Create(context.Background(), userID, profile.CreateParams{
		FullName: name,
		Email:    userID + "@example.com",
	})
	require.NoError(t, err)
}

func (f *fixture) post(t *testing.T, userID, content string) *post.Post {
	t.Helper()
	p, err := f.posts.Insert(context.Background(), post.NewPost{AuthorUserID: userID, Content: content})
	require.NoError(t, err)
	return p
}

type failingSource struct{ err error }

func (s failingSource) Global(context.Context) ([]Entry, error)           { return nil, s.err }
func (s failingSource) ByAuthor(context.Context, string) ([]Entry, error) { return nil, s.err }

type nilSource struct{}

func (nilSource) Global(context.Context) ([]Entry, error)           { return nil, nil }
func (nilSource) ByAuthor(context.Context, string) ([]Entry, error) { return nil, nil }

func TestGlobalFeedOrdering(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	f.profile(t, "bob", "Bob Example")

	first := f.post(t, "alice", "first")
	second := f.post(t, "bob", "second")
	third := f.post(t, "alice", "third")

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, third.ID, entries[0].PostID)
	assert.Equal(t, second.ID, entries[1].PostID)
	assert.Equal(t, first.ID, entries[2].PostID)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt), "entries must be newest first")
	}
}

func TestGlobalFeedJoinsAuthorFields(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	p := f.post(t, "alice", "hello")

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, p.ID, e.PostID)
	assert.Equal(t, "hello", e.Content)
	assert.Equal(t, "alice", e.AuthorUserID)
	assert.Equal(t, "Alice Example", e.AuthorName)
	assert.Equal(t, "alice@example.com", e.AuthorEmail)
	assert.Equal(t, p.CreatedAt, e.CreatedAt)
}

func TestGlobalFeedReflectsCurrentProfile(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	f.post(t, "alice", "hello")

	_, err := f.profiles.Update(context.Background(), "alice", profile.UpdateParams{FullName: "Alice Renamed"})
	require.NoError(t, err)

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice Renamed", entries[0].AuthorName)
}

func TestGlobalFeedDropsOrphans(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	kept := f.post(t, "alice", "kept")
	f.posts.Seed(post.Post{
		ID:           post.NewID(),
		Content:      "orphan",
		AuthorUserID: "ghost",
		CreatedAt:    time.Now().UTC(),
	})

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].PostID)
}

func TestGlobalFeedDropsPostsOfRemovedAuthor(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	f.profile(t, "bob", "Bob Example")
	f.post(t, "alice", "a")
	f.post(t, "bob", "b")
	f.profiles.Delete("bob")

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].AuthorUserID)
}

func TestGlobalFeedTieBreak(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.posts.Seed(
		post.Post{ID: "0190a000-0000-7000-8000-00000000000a", AuthorUserID: "alice", Content: "a", CreatedAt: at},
		post.Post{ID: "0190a000-0000-7000-8000-00000000000c", AuthorUserID: "alice", Content: "c", CreatedAt: at},
		post.Post{ID: "0190a000-0000-7000-8000-00000000000b", AuthorUserID: "alice", Content: "b", CreatedAt: at},
	)

	for range 3 {
		entries, err := f.svc.GlobalFeed(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, []string{"c", "b", "a"}, []string{entries[0].Content, entries[1].Content, entries[2].Content})
	}
}

func TestGlobalFeedIdempotent(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	f.profile(t, "bob", "Bob Example")
	noon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := noon.Add(time.Minute)
	f.posts.Seed(
		post.Post{ID: "0190a000-0000-7000-8000-000000000002", AuthorUserID: "bob", Content: "noon-2", CreatedAt: noon},
		post.Post{ID: "0190a000-0000-7000-8000-000000000010", AuthorUserID: "alice", Content: "later", CreatedAt: later},
		post.Post{ID: "0190a000-0000-7000-8000-000000000001", AuthorUserID: "alice", Content: "early", CreatedAt: noon.Add(-time.Hour)},
		post.Post{ID: "0190a000-0000-7000-8000-000000000003", AuthorUserID: "alice", Content: "noon-3", CreatedAt: noon},
	)
	ctx := context.Background()

	first, err := f.svc.GlobalFeed(ctx)
	require.NoError(t, err)
	second, err := f.svc.GlobalFeed(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	contents := make([]string, len(first))
	for i, e := range first {
		contents[i] = e.Content
	}
	assert.Equal(t, []string{"later", "noon-3", "noon-2", "early"}, contents)
}

func TestGlobalFeedEmpty(t *testing.T) {
	f := newFixture(t)

	entries, err := f.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestEmptySourceResultIsNonNil(t *testing.T) {
	svc := NewService(nilSource{})

	global, err := svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, global)

	user, err := svc.UserFeed(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestUserFeed(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")
	f.profile(t, "bob", "Bob Example")
	f.post(t, "alice", "a1")
	f.post(t, "bob", "b1")
	f.post(t, "alice", "a2")

	entries, err := f.svc.UserFeed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a2", entries[0].Content)
	assert.Equal(t, "a1", entries[1].Content)
	for _, e := range entries {
		assert.Equal(t, "alice", e.AuthorUserID)
	}
}

func TestUserFeedUnknownUser(t *testing.T) {
	f := newFixture(t)

	entries, err := f.svc.UserFeed(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestQueryFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewService(failingSource{err: cause})

	_, err := svc.GlobalFeed(context.Background())
	require.ErrorIs(t, err, ErrQueryFailed)
	require.ErrorIs(t, err, cause)

	_, err = svc.UserFeed(context.Background(), "alice")
	require.ErrorIs(t, err, ErrQueryFailed)

	_, err = svc.AuthorSummary(context.Background(), "alice")
	require.ErrorIs(t, err, ErrQueryFailed)
}

func TestAuthorSummary(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "alice", "Alice Example")

	empty, err := f.svc.AuthorSummary(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.PostCount)
	assert.True(t, empty.LatestAt.IsZero())

	f.post(t, "alice", "one")
	latest := f.post(t, "alice", "two")

	sum, err := f.svc.AuthorSummary(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", sum.UserID)
	assert.Equal(t, 2, sum.PostCount)
	assert.Equal(t, latest.CreatedAt, sum.LatestAt)
}

func TestAuthorInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada", "A"},
		{"Jean Claude Van Damme", "JC"},
		{"  spaced   out ", "SO"},
		{"élodie durand", "ÉD"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Entry{AuthorName: tt.name}.AuthorInitials())
		})
	}
}
