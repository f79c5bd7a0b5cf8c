package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
	"github.com/heartmarshall/wordlookup/internal/service/lookup"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusClientClosedRequest is written when the caller went away before the
// lookup finished.
const statusClientClosedRequest = 499

// handleError maps service and transport errors to HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		log.DebugContext(r.Context(), "request canceled by client", slog.String("error", err.Error()))
		writeError(w, statusClientClosedRequest, "request canceled")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lookup.ErrHistoryDisabled):
		writeError(w, http.StatusServiceUnavailable, "history is disabled")
	case provider.IsTransportError(err), errors.Is(err, context.DeadlineExceeded):
		handleTransportError(w, r, log, err)
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleTransportError answers failures talking to the dictionary service.
// A request that could not be built is our bug, not the upstream's.
func handleTransportError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var setupErr *provider.RequestSetupError

	switch {
	case errors.As(err, &setupErr):
		log.ErrorContext(r.Context(), "dictionary request setup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	case errors.Is(err, provider.ErrNoResponse), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "dictionary service did not respond")
	default:
		writeError(w, http.StatusBadGateway, "dictionary service error")
	}
}
