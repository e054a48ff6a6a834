package post

import (
	"testing"

	"github.com/janisto/huma-feed/internal/service/profile"
	"github.com/janisto/huma-feed/internal/testutil"
)

func TestFirestoreStore(t *testing.T) {
	testutil.SkipIfFirestoreUnavailable(t)
	testStore(t, func(t *testing.T) (Store, profile.Store) {
		client := testutil.NewFirestoreClient(t)
		return NewFirestoreStore(client), profile.NewFirestoreStore(client)
	})
}

func TestPostgresStore(t *testing.T) {
	testStore(t, func(t *testing.T) (Store, profile.Store) {
		pool := testutil.NewPostgresPool(t)
		return NewPostgresStore(pool), profile.NewPostgresStore(pool)
	})
}
