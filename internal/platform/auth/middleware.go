package auth

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/huma-feed/internal/platform/logging"
)

// certRetryAfter is advertised when signing keys cannot be fetched.
const certRetryAfter = "30"

// NewAuthMiddleware returns huma middleware that resolves the bearer token of
// every operation declaring a Security requirement into a *User on the
// request context. Operations without one pass through.
//
// Failures are reported as problem details: 401 with a Bearer challenge for
// missing or rejected tokens, 503 when the verifier cannot reach its key
// source. Only a reason category is logged, never the token.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	reject := func(ctx huma.Context, reason string, status int, msg string) {
		applog.LogWarn(ctx.Context(), "request rejected by auth",
			zap.String("reason", reason),
			zap.String("operationId", ctx.Operation().OperationID),
		)
		if status == http.StatusUnauthorized {
			ctx.SetHeader("WWW-Authenticate", "Bearer")
		} else {
			ctx.SetHeader("Retry-After", certRetryAfter)
		}
		_ = huma.WriteErr(api, ctx, status, msg)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			reject(ctx, "no_token", http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		user, err := verifier.Verify(ctx.Context(), token)
		switch {
		case errors.Is(err, ErrCertificateFetch):
			reject(ctx, reasonFor(err), http.StatusServiceUnavailable, "authentication service temporarily unavailable")
			return
		case err != nil || user == nil || user.UID == "":
			reject(ctx, reasonFor(err), http.StatusUnauthorized, "invalid or expired token")
			return
		}

		goCtx := applog.WithFields(WithUser(ctx.Context(), user), zap.String("userId", user.UID))
		next(huma.WithContext(ctx, goCtx))
	}
}

// reasonFor maps a verification error onto a log-safe category.
func reasonFor(err error) string {
	switch {
	case err == nil:
		return "empty_identity"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	}
	return "unknown"
}
