package main

import (
	"context"
	"fmt"

	"github.com/janisto/huma-feed/internal/http/health"
	"github.com/janisto/huma-feed/internal/http/v1/routes"
	"github.com/janisto/huma-feed/internal/platform/auth"
	"github.com/janisto/huma-feed/internal/platform/config"
	"github.com/janisto/huma-feed/internal/platform/firebase"
	"github.com/janisto/huma-feed/internal/platform/postgres"
	feedsvc "github.com/janisto/huma-feed/internal/service/feed"
	postsvc "github.com/janisto/huma-feed/internal/service/post"
	profilesvc "github.com/janisto/huma-feed/internal/service/profile"
)

// backend is everything the HTTP layer needs from the selected stores and
// identity provider.
type backend struct {
	services routes.Services
	verifier auth.Verifier
	checks   []health.Check
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	var clients *firebase.Clients
	if cfg.NeedsFirebase() {
		var err error
		clients, err = firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.ProjectID,
			GoogleApplicationCredentials: cfg.CredentialsFile,
			WithAuth:                     cfg.AuthMode == config.AuthFirebase,
			WithFirestore:                cfg.StoreBackend == config.BackendFirestore,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = clients.Close() })
	}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		profiles := profilesvc.NewMemoryStore()
		posts := postsvc.NewMemoryStore(profiles)
		b.services = routes.NewServices(profiles, posts, feedsvc.NewStoreSource(posts, profiles))
	case config.BackendFirestore:
		profiles := profilesvc.NewFirestoreStore(clients.Firestore)
		posts := postsvc.NewFirestoreStore(clients.Firestore)
		b.services = routes.NewServices(profiles, posts, feedsvc.NewStoreSource(posts, profiles))
	case config.BackendPostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		b.checks = append(b.checks, pool.Ping)
		b.services = routes.NewServices(
			profilesvc.NewPostgresStore(pool),
			postsvc.NewPostgresStore(pool),
			feedsvc.NewPostgresSource(pool),
		)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	switch cfg.AuthMode {
	case config.AuthFirebase:
		b.verifier = auth.NewFirebaseVerifier(clients.Auth)
	case config.AuthJWT:
		b.verifier = auth.NewJWTVerifier([]byte(cfg.JWTSecret), cfg.JWTIssuer)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
	return b, nil
}
