package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
)

func TestRecovery_PassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected handler status %d, got %d", http.StatusAccepted, rec.Code)
	}
}

func TestRecovery_Panics(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantLog string
	}{
		{"string", "nil entries slice", "nil entries slice"},
		{"error", errors.New("normalizer exploded"), "normalizer exploded"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic(tt.value) })

			req := httptest.NewRequest(http.MethodGet, "/api/v1/lookup", nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-7"))
			rec := httptest.NewRecorder()
			Recovery(logger)(handler).ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("expected status 500, got %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("expected Content-Type application/json, got %q", got)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"internal server error"}` {
				t.Errorf("expected JSON error body, got %q", body)
			}

			out := buf.String()
			for _, want := range []string{"panic recovered", tt.wantLog, "request_id=req-7", "path=/api/v1/lookup", "stack="} {
				if !strings.Contains(out, want) {
					t.Errorf("expected log to contain %q, got %q", want, out)
				}
			}
		})
	}
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	Recovery(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Error("expected panic to propagate")
}
