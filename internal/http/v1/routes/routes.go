package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/huma-feed/internal/http/v1/feed"
	"github.com/janisto/huma-feed/internal/http/v1/posts"
	"github.com/janisto/huma-feed/internal/http/v1/profile"
	"github.com/janisto/huma-feed/internal/platform/auth"
	feedsvc "github.com/janisto/huma-feed/internal/service/feed"
	"github.com/janisto/huma-feed/internal/service/mutation"
	postsvc "github.com/janisto/huma-feed/internal/service/post"
	profilesvc "github.com/janisto/huma-feed/internal/service/profile"
)

// Services are the domain services behind the v1 API.
type Services struct {
	Profiles  profilesvc.Store
	Mutations *mutation.Coordinator
	Feeds     *feedsvc.Service
}

// NewServices builds the services over a pair of stores and a feed source.
func NewServices(profiles profilesvc.Store, posts postsvc.Store, source feedsvc.Source) Services {
	return Services{
		Profiles:  profiles,
		Mutations: mutation.NewCoordinator(posts, profiles),
		Feeds:     feedsvc.NewService(source),
	}
}

// Register wires all v1 operations into api. Every operation requires a
// bearer token.
func Register(api huma.API, verifier auth.Verifier, svc Services) {
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	feed.Register(api, svc.Feeds)
	posts.Register(api, svc.Mutations)
	profile.Register(api, svc.Profiles, svc.Mutations, svc.Feeds)
}
