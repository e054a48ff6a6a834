package profile

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is the public record of an authenticated identity. UserID is the
// external identity and never changes; ID is assigned by the store.
type Profile struct {
	ID        string
	UserID    string
	FullName  string
	Email     string
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for provisioning a profile.
type CreateParams struct {
	FullName string
	Email    string
	Bio      *string
}

// UpdateParams replaces the user-editable fields. A nil Bio clears it.
type UpdateParams struct {
	FullName string
	Bio      *string
}

// Store owns profile records, one per user ID.
//
// Implementations must:
//   - lowercase and trim Email on Create
//   - apply Update only to the record matching userID and never create one
//     (ErrNotFound instead)
//   - treat concurrent Updates as last-write-wins; there is no version check
type Store interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	// GetMany returns the profiles that exist among userIDs, keyed by user ID.
	// Missing users are simply absent from the map.
	GetMany(ctx context.Context, userIDs []string) (map[string]*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneBio(bio *string) *string {
	if bio == nil {
		return nil
	}
	b := *bio
	return &b
}
