package profile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProfilesCollection holds one document per user, keyed by user ID.
const ProfilesCollection = "profiles"

type firestoreProfile struct {
	ID        string    `firestore:"id"`
	FullName  string    `firestore:"full_name"`
	Email     string    `firestore:"email"`
	Bio       *string   `firestore:"bio"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (fp *firestoreProfile) toProfile(userID string) *Profile {
	return &Profile{
		ID:        fp.ID,
		UserID:    userID,
		FullName:  fp.FullName,
		Email:     fp.Email,
		Bio:       fp.Bio,
		CreatedAt: fp.CreatedAt,
		UpdatedAt: fp.UpdatedAt,
	}
}

// FirestoreStore implements Store on Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(ProfilesCollection).Doc(userID)
}

// Create inserts a profile inside a transaction to prevent duplicates.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	docRef := s.doc(userID)
	now := time.Now().UTC().Truncate(time.Microsecond)

	var result *Profile
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		fp := firestoreProfile{
			ID:        uuid.NewString(),
			FullName:  params.FullName,
			Email:     normalizeEmail(params.Email),
			Bio:       params.Bio,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(userID), nil
}

// GetMany batch-reads the requested profiles in a single round trip.
func (s *FirestoreStore) GetMany(ctx context.Context, userIDs []string) (map[string]*Profile, error) {
	ids := uniqueIDs(userIDs)
	out := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = s.doc(id)
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		out[doc.Ref.ID] = fp.toProfile(doc.Ref.ID)
	}
	return out, nil
}

// Update replaces the editable fields inside a transaction. A missing
// document is reported as ErrNotFound and never created.
func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	docRef := s.doc(userID)

	var result *Profile
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}
		fp.FullName = params.FullName
		fp.Bio = params.Bio
		fp.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ Store = (*FirestoreStore)(nil)
