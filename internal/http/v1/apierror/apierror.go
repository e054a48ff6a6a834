// Package apierror maps service errors onto huma status errors. Internal
// causes are logged and never echoed to clients.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/huma-feed/internal/platform/logging"
	"github.com/janisto/huma-feed/internal/service/feed"
	"github.com/janisto/huma-feed/internal/service/mutation"
	"github.com/janisto/huma-feed/internal/service/post"
	"github.com/janisto/huma-feed/internal/service/profile"
)

// RetryAfter is advertised on 503 responses, in seconds.
const RetryAfter = "5"

// From converts err into the error a huma handler should return.
func From(ctx context.Context, err error) error {
	var ve *mutation.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]error, len(ve.Issues))
		for i, is := range ve.Issues {
			details[i] = &huma.ErrorDetail{Message: is.Message, Location: "body." + is.Field}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case errors.Is(err, mutation.ErrUnauthenticated):
		return huma.ErrorWithHeaders(
			huma.Error401Unauthorized("authentication required"),
			http.Header{"WWW-Authenticate": {"Bearer"}},
		)
	case errors.Is(err, post.ErrConstraintViolation):
		return huma.Error409Conflict("create a profile before posting")
	case errors.Is(err, profile.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	case errors.Is(err, profile.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, feed.ErrQueryFailed):
		return huma.ErrorWithHeaders(
			huma.Error503ServiceUnavailable("feed temporarily unavailable"),
			http.Header{"Retry-After": {RetryAfter}},
		)
	default:
		applog.LogError(ctx, "unhandled service error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
