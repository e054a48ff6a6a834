package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/huma-feed/internal/testutil"
)

func TestFirestoreStore(t *testing.T) {
	testutil.SkipIfFirestoreUnavailable(t)
	testStore(t, func(t *testing.T) Store {
		return NewFirestoreStore(testutil.NewFirestoreClient(t))
	})
}

func TestFirestoreGetCancelledContext(t *testing.T) {
	store := NewFirestoreStore(testutil.NewFirestoreClient(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "expected context error")
}
