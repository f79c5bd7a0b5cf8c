package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"uuid kept", "6f1c2b1e-5a4d-4f7e-9a53-0c8b2f3d9e10", true},
		{"trace style kept", "ext-42.lookup:7_a", true},
		{"missing", "", false},
		{"oversized", strings.Repeat("x", maxRequestIDLen+1), false},
		{"log injection", "abc\nlevel=ERROR msg=forged", false},
		{"spaces", "my request", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = ctxutil.RequestIDFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/lookup?word=run", nil)
			if tt.incoming != "" {
				req.Header[RequestIDHeader] = []string{tt.incoming}
			}
			rec := httptest.NewRecorder()
			RequestID()(handler).ServeHTTP(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header != ctxID {
				t.Errorf("header %q and context %q differ", header, ctxID)
			}
			if tt.keep {
				if ctxID != tt.incoming {
					t.Errorf("expected incoming ID %q kept, got %q", tt.incoming, ctxID)
				}
				return
			}
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Errorf("expected minted UUID, got %q", ctxID)
			}
		})
	}
}
