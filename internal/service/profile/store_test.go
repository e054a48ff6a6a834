package profile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// testStore runs the behaviour every Store implementation must share.
func testStore(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateAndGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "user-1", CreateParams{
			FullName: "Ada Lovelace",
			Email:    "  ADA@Example.COM ",
			Bio:      strPtr("Analyst"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "user-1", created.UserID)
		assert.Equal(t, "ada@example.com", created.Email)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())

		got, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Ada Lovelace", got.FullName)
		require.NotNil(t, got.Bio)
		assert.Equal(t, "Analyst", *got.Bio)
	})

	t.Run("TimestampsRoundTrip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "user-1", CreateParams{FullName: "A", Email: "a@example.com"})
		require.NoError(t, err)
		assert.True(t, created.CreatedAt.Equal(created.CreatedAt.Truncate(time.Microsecond)), "sub-microsecond digits in %s", created.CreatedAt)

		updated, err := store.Update(ctx, "user-1", UpdateParams{FullName: "B"})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.Equal(updated.UpdatedAt.Truncate(time.Microsecond)), "sub-microsecond digits in %s", updated.UpdatedAt)

		got, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Create(ctx, "user-1", CreateParams{FullName: "A", Email: "a@example.com"})
		require.NoError(t, err)
		_, err = store.Create(ctx, "user-1", CreateParams{FullName: "B", Email: "b@example.com"})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(context.Background(), "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetMany", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, id := range []string{"u1", "u2"} {
			_, err := store.Create(ctx, id, CreateParams{FullName: id, Email: id + "@example.com"})
			require.NoError(t, err)
		}

		got, err := store.GetMany(ctx, []string{"u1", "u2", "u1", "ghost"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, got["u1"])
		assert.Equal(t, "u1", got["u1"].FullName)
		assert.NotContains(t, got, "ghost")

		empty, err := store.GetMany(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("Update", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "user-1", CreateParams{
			FullName: "Old Name",
			Email:    "user@example.com",
			Bio:      strPtr("old bio"),
		})
		require.NoError(t, err)

		updated, err := store.Update(ctx, "user-1", UpdateParams{FullName: "New Name", Bio: strPtr("new bio")})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.FullName)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "new bio", *updated.Bio)
		assert.Equal(t, created.ID, updated.ID, "ID is immutable")
		assert.Equal(t, created.Email, updated.Email, "email is immutable")
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "CreatedAt is immutable")

		cleared, err := store.Update(ctx, "user-1", UpdateParams{FullName: "New Name", Bio: nil})
		require.NoError(t, err)
		assert.Nil(t, cleared.Bio)

		got, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, got.Bio)
		assert.Equal(t, "New Name", got.FullName)
	})

	t.Run("UpdateDoesNotCreate", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Update(ctx, "missing", UpdateParams{FullName: "Ghost"})
		require.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound, "profile must remain absent")
	})

	t.Run("UpdateTouchesOnlyOwnRecord", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, id := range []string{"alice", "bob"} {
			_, err := store.Create(ctx, id, CreateParams{FullName: id, Email: id + "@example.com"})
			require.NoError(t, err)
		}
		_, err := store.Update(ctx, "alice", UpdateParams{FullName: "Alice Smith"})
		require.NoError(t, err)

		bob, err := store.Get(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", bob.FullName)
	})

	t.Run("ConcurrentUpdatesLastWriteWins", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Create(ctx, "user-1", CreateParams{FullName: "start", Email: "u@example.com"})
		require.NoError(t, err)

		names := []string{"one", "two", "three", "four"}
		var wg sync.WaitGroup
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				_, err := store.Update(ctx, "user-1", UpdateParams{FullName: name})
				assert.NoError(t, err)
			}(name)
		}
		wg.Wait()

		got, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Contains(t, names, got.FullName)
	})
}
