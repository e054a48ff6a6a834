package post

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/huma-feed/internal/service/profile"
)

// PostsCollection holds one document per post, keyed by post ID.
const PostsCollection = "posts"

type firestorePost struct {
	Content   string    `firestore:"content"`
	UserID    string    `firestore:"user_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

// FirestoreStore implements Store on Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Insert reads the author's profile and creates the post in one transaction,
// so a post can never land without its author.
func (s *FirestoreStore) Insert(ctx context.Context, p NewPost) (*Post, error) {
	authorRef := s.client.Collection(profile.ProfilesCollection).Doc(p.AuthorUserID)
	id := NewID()
	postRef := s.client.Collection(PostsCollection).Doc(id)

	var result *Post
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(authorRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrConstraintViolation
			}
			return err
		}
		if !doc.Exists() {
			return ErrConstraintViolation
		}

		fp := firestorePost{
			Content:   p.Content,
			UserID:    p.AuthorUserID,
			// Microseconds, matching Postgres and the wire format.
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := tx.Create(postRef, fp); err != nil {
			return err
		}
		result = &Post{ID: id, Content: fp.Content, AuthorUserID: fp.UserID, CreatedAt: fp.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FirestoreStore) ListAll(ctx context.Context) ([]Post, error) {
	q := s.client.Collection(PostsCollection).
		OrderBy("created_at", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)
	return collect(q.Documents(ctx))
}

func (s *FirestoreStore) ListByAuthor(ctx context.Context, userID string) ([]Post, error) {
	q := s.client.Collection(PostsCollection).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)
	return collect(q.Documents(ctx))
}

func collect(iter *firestore.DocumentIterator) ([]Post, error) {
	defer iter.Stop()

	out := make([]Post, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp firestorePost
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		out = append(out, Post{
			ID:           doc.Ref.ID,
			Content:      fp.Content,
			AuthorUserID: fp.UserID,
			CreatedAt:    fp.CreatedAt,
		})
	}
	// Firestore timestamps are microsecond precision; re-sort so ties
	// follow Compare exactly.
	Sort(out)
	return out, nil
}

var _ Store = (*FirestoreStore)(nil)
