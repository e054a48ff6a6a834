package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/huma-feed/internal/platform/auth"
	applog "github.com/janisto/huma-feed/internal/platform/logging"
	appmiddleware "github.com/janisto/huma-feed/internal/platform/middleware"
	"github.com/janisto/huma-feed/internal/platform/respond"
)

// NewRouter builds a chi router with the production middleware chain and a
// huma API guarded by verifier. register adds the operations under test.
func NewRouter(verifier auth.Verifier, register func(api huma.API)) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("Test", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	register(api)
	return router
}

// Do sends a request through handler. A non-empty token is sent as a bearer
// token; a non-empty body is sent as JSON.
func Do(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}
