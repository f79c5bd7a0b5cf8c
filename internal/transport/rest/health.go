package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db         dbPinger
	version    string
	dictionary string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the service
// runs without a database; it is then reported as disabled and never fails
// readiness. dictionary names the configured lookup backend.
func NewHealthHandler(db dbPinger, version, dictionary string) *HealthHandler {
	return &HealthHandler{db: db, version: version, dictionary: dictionary}
}

// HealthResponse is the JSON response for the health endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while a configured database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())
	status, code := overall(db)
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports every component with the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())
	status, code := overall(db)

	writeJSON(w, code, HealthResponse{
		Status:  status,
		Version: h.version,
		Components: map[string]CompStatus{
			"database":   db,
			"dictionary": {Status: "configured", Backend: h.dictionary},
		},
		Timestamp: time.Now(),
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CompStatus {
	if h.db == nil {
		return CompStatus{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func overall(db CompStatus) (string, int) {
	if db.Status == "down" {
		return "down", http.StatusServiceUnavailable
	}
	return "ok", http.StatusOK
}
