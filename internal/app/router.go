package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/auth"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/transport/rest"
)

// routes groups everything the HTTP router needs.
type routes struct {
	cfg     config.Config
	logger  *slog.Logger
	lookup  *rest.LookupHandler
	health  *rest.HealthHandler
	tokens  *auth.JWTManager // nil when auth is disabled
	limiter *middleware.RateLimiter
}

// newRouter builds the HTTP handler. Health endpoints stay outside the
// middleware chain so orchestrators are never rate limited or asked for tokens.
func newRouter(rt routes) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/lookup", rt.lookup.Lookup)
	api.HandleFunc("GET /api/v1/history", rt.lookup.History)
	api.HandleFunc("GET /api/v1/translit", rest.Translit)

	opts := middleware.APIOptions{
		Logger:  rt.logger,
		CORS:    rt.cfg.CORS,
		Auth:    rt.cfg.Auth,
		Limiter: rt.limiter,
		Limit:   rt.cfg.RateLimit,
	}
	if rt.tokens != nil {
		opts.Tokens = rt.tokens
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", rt.health.Live)
	mux.HandleFunc("GET /ready", rt.health.Ready)
	mux.HandleFunc("GET /health", rt.health.Health)
	mux.Handle("/api/", middleware.API(opts)(api))

	return mux
}
