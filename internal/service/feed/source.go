package feed

import (
	"context"

	"github.com/janisto/huma-feed/internal/service/post"
	"github.com/janisto/huma-feed/internal/service/profile"
)

// StoreSource joins in the application: it lists posts, then resolves their
// authors with a single batched profile lookup.
type StoreSource struct {
	posts    post.Store
	profiles profile.Store
}

// NewStoreSource creates a source over the two stores.
func NewStoreSource(posts post.Store, profiles profile.Store) *StoreSource {
	return &StoreSource{posts: posts, profiles: profiles}
}

func (s *StoreSource) Global(ctx context.Context) ([]Entry, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, posts)
}

func (s *StoreSource) ByAuthor(ctx context.Context, userID string) ([]Entry, error) {
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, posts)
}

func (s *StoreSource) join(ctx context.Context, posts []post.Post) ([]Entry, error) {
	entries := make([]Entry, 0, len(posts))
	if len(posts) == 0 {
		return entries, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.AuthorUserID
	}
	authors, err := s.profiles.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		author, ok := authors[p.AuthorUserID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			PostID:       p.ID,
			Content:      p.Content,
			AuthorUserID: p.AuthorUserID,
			AuthorName:   author.FullName,
			AuthorEmail:  author.Email,
			CreatedAt:    p.CreatedAt,
		})
	}
	return entries, nil
}

var _ Source = (*StoreSource)(nil)
