package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/huma-feed/internal/http/health"
	"github.com/janisto/huma-feed/internal/http/v1/routes"
	"github.com/janisto/huma-feed/internal/platform/auth"
	"github.com/janisto/huma-feed/internal/platform/config"
	applog "github.com/janisto/huma-feed/internal/platform/logging"
	appmiddleware "github.com/janisto/huma-feed/internal/platform/middleware"
	"github.com/janisto/huma-feed/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	if !applog.SetLevel(cfg.LogLevel) {
		applog.LogWarn(context.Background(), "unknown log level, keeping info", zap.String("level", cfg.LogLevel))
	}
	applog.SetProjectID(cfg.ProjectID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "backend init failed", err,
			zap.String("store", cfg.StoreBackend), zap.String("auth", cfg.AuthMode))
	}
	defer b.Close()

	applog.LogInfo(ctx, "backend ready", zap.String("store", cfg.StoreBackend), zap.String("auth", cfg.AuthMode))

	srv := newServer(cfg, newHandler(cfg, b.verifier, b.services, b.checks...))
	if err := serve(ctx, srv, cfg.ShutdownTimeout); err != nil {
		applog.LogError(context.Background(), "server error", err, zap.String("addr", srv.Addr))
		b.Close()
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// newHandler assembles the middleware chain, the health check and the
// versioned huma API.
func newHandler(cfg *config.Config, verifier auth.Verifier, svc routes.Services, checks ...health.Check) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins...),
		appmiddleware.RequestID(),
		// Only trustworthy behind a reverse proxy that sets X-Forwarded-For.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.NewHandler(checks...))
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteRedirect(w, r, apiPrefix+docsPath, http.StatusFound)
	})

	router.Route(apiPrefix, func(r chi.Router) {
		api := humachi.New(r, apiConfig())
		routes.Register(api, verifier, svc)
	})
	return router
}

func apiConfig() huma.Config {
	cfg := huma.DefaultConfig("Feed API", Version)
	cfg.DocsPath = docsPath
	cfg.Servers = []*huma.Server{{URL: apiPrefix}}
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	cfg.OnAddOperation = append(cfg.OnAddOperation, addCBORContent)
	return cfg
}

// addCBORContent advertises application/cbor next to every JSON body.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
