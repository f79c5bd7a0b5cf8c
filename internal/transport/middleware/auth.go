package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
)

// TokenValidator resolves a bearer token to the client it was issued to.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Auth returns middleware that authenticates bearer tokens. When required is
// false, requests without a token pass through anonymously; a token that is
// present but invalid is always rejected.
func Auth(validator TokenValidator, required bool, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				if required {
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			clientID, label, err := validator.ValidateAccessToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token rejected",
					slog.String("error", err.Error()),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				unauthorized(w)
				return
			}
			if label != "" {
				logger.DebugContext(r.Context(), "client authenticated", slog.String("client", label))
			}

			ctx := ctxutil.WithClientID(r.Context(), clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="wordlookup"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
