package post

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/janisto/huma-feed/internal/service/profile"
)

// MemoryStore implements Store in process memory. Author existence is
// checked against the profile store it is built with.
type MemoryStore struct {
	mu       sync.RWMutex
	posts    []Post
	profiles profile.Store
	now      func() time.Time
}

// NewMemoryStore creates an empty store whose inserts require a profile in profiles.
func NewMemoryStore(profiles profile.Store) *MemoryStore {
	return &MemoryStore{
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (m *MemoryStore) Insert(ctx context.Context, p NewPost) (*Post, error) {
	if _, err := m.profiles.Get(ctx, p.AuthorUserID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrConstraintViolation
		}
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := Post{
		ID:           NewID(),
		Content:      p.Content,
		AuthorUserID: p.AuthorUserID,
		CreatedAt:    m.now(),
	}
	m.posts = append(m.posts, created)
	return &created, nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]Post, error) {
	return m.list(ctx, func(Post) bool { return true })
}

func (m *MemoryStore) ListByAuthor(ctx context.Context, userID string) ([]Post, error) {
	return m.list(ctx, func(p Post) bool { return p.AuthorUserID == userID })
}

func (m *MemoryStore) list(ctx context.Context, keep func(Post) bool) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	out := make([]Post, 0, len(m.posts))
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	m.mu.RUnlock()

	Sort(out)
	return out, nil
}

// Seed inserts a post as-is, skipping the author check. Tests use it to
// build orphaned posts and timestamp ties.
func (m *MemoryStore) Seed(posts ...Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, posts...)
}

var _ Store = (*MemoryStore)(nil)
