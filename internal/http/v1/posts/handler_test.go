package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/huma-feed/internal/platform/auth"
	"github.com/janisto/huma-feed/internal/service/mutation"
	postsvc "github.com/janisto/huma-feed/internal/service/post"
	profilesvc "github.com/janisto/huma-feed/internal/service/profile"
	"github.com/janisto/huma-feed/internal/testutil"
)

const token = "valid-token"

type env struct {
	router   chi.Router
	profiles *profilesvc.MemoryStore
	posts    *postsvc.MemoryStore
}

func newEnv(t *testing.T, withProfile bool) *env {
	t.Helper()
	profiles := profilesvc.NewMemoryStore()
	posts := postsvc.NewMemoryStore(profiles)
	user := auth.TestUser()
	if withProfile {
		_, err := profiles.Create(context.Background(), user.UID, profilesvc.CreateParams{
			FullName: "Test User",
			Email:    user.Email,
		})
		require.NoError(t, err)
	}
	coord := mutation.NewCoordinator(posts, profiles)
	router := testutil.NewRouter(auth.TokenVerifier{token: user}, func(api huma.API) {
		Register(api, coord)
	})
	return &env{router: router, profiles: profiles, posts: posts}
}

func (e *env) stored(t *testing.T) []postsvc.Post {
	t.Helper()
	all, err := e.posts.ListAll(context.Background())
	require.NoError(t, err)
	return all
}

type failingCreator struct{ err error }

func (f failingCreator) CreatePost(context.Context, *auth.User, string) (*postsvc.Post, error) {
	return nil, f.err
}

func TestCreatePostSuccess(t *testing.T) {
	e := newEnv(t, true)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token, `{"content":"  Hello, world  "}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var post Post
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &post))
	assert.Equal(t, "Hello, world", post.Content)
	assert.Equal(t, auth.TestUser().UID, post.AuthorUserID)
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	assert.Len(t, e.stored(t), 1)
}

func TestCreatePostIgnoresClientAuthor(t *testing.T) {
	e := newEnv(t, true)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token, `{"content":"hi","authorUserId":"someone-else"}`)
	if resp.Code != http.StatusCreated {
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		return
	}
	var post Post
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &post))
	assert.Equal(t, auth.TestUser().UID, post.AuthorUserID)
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"content":""}`},
		{"whitespace", `{"content":"   \n  "}`},
		{"too long", `{"content":"` + strings.Repeat("x", mutation.MaxContentLength+1) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, true)

			resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

			var problem huma.ErrorModel
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, "body.content", problem.Errors[0].Location)

			assert.Empty(t, e.stored(t))
		})
	}
}

func TestCreatePostAtLengthLimit(t *testing.T) {
	e := newEnv(t, true)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token,
		`{"content":"`+strings.Repeat("x", mutation.MaxContentLength)+`"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Len(t, e.stored(t), 1)
}

func TestCreatePostMissingBodyField(t *testing.T) {
	e := newEnv(t, true)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCreatePostWithoutProfile(t *testing.T) {
	e := newEnv(t, false)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", token, `{"content":"hello"}`)
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())
}

func TestCreatePostUnauthorized(t *testing.T) {
	e := newEnv(t, true)

	resp := testutil.Do(t, e.router, http.MethodPost, "/posts", "", `{"content":"hello"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"))

	resp = testutil.Do(t, e.router, http.MethodPost, "/posts", "wrong-token", `{"content":"hello"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	assert.Empty(t, e.stored(t))
}

func TestCreatePostInternalError(t *testing.T) {
	router := testutil.NewRouter(&auth.MockVerifier{User: auth.TestUser()}, func(api huma.API) {
		Register(api, failingCreator{err: errors.New("disk on fire")})
	})

	resp := testutil.Do(t, router, http.MethodPost, "/posts", token, `{"content":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "disk on fire", "internal cause leaked to client")
}
