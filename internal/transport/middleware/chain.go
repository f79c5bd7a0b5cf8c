package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware so the first one runs outermost. Nil entries are
// skipped, which lets optional stages be passed inline.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// APIOptions configures the chain in front of the /api routes.
type APIOptions struct {
	Logger  *slog.Logger
	CORS    config.CORSConfig
	Tokens  TokenValidator // nil disables authentication
	Auth    config.AuthConfig
	Limiter *RateLimiter
	Limit   config.RateLimitConfig
}

// API returns the /api middleware stack:
// Recovery, RequestID, Logger, CORS, Auth, RateLimit.
//
// CORS answers preflights before Auth sees them, and Auth runs before the
// limiter so buckets are keyed by client rather than by address.
func API(o APIOptions) Middleware {
	var authenticate Middleware
	if o.Tokens != nil {
		authenticate = Auth(o.Tokens, o.Auth.Required, o.Logger)
	}
	return Chain(
		Recovery(o.Logger),
		RequestID(),
		Logger(o.Logger),
		CORS(o.CORS),
		authenticate,
		o.Limiter.Limit(o.Limit.PerMinute),
	)
}
