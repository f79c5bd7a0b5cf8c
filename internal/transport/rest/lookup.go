package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// lookupService defines the minimal interface needed by LookupHandler.
type lookupService interface {
	Resolve(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error)
	History(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}

// LookupHandler serves word lookups and lookup history.
type LookupHandler struct {
	svc           lookupService
	defaultRegion domain.Region
	log           *slog.Logger
}

// NewLookupHandler creates a LookupHandler. Requests without a region use
// defaultRegion.
func NewLookupHandler(svc lookupService, defaultRegion domain.Region, logger *slog.Logger) *LookupHandler {
	if !defaultRegion.IsValid() {
		defaultRegion = domain.DefaultRegion
	}
	return &LookupHandler{svc: svc, defaultRegion: defaultRegion, log: logger.With("handler", "lookup")}
}

type lookupResponse struct {
	Word         string          `json:"word"`
	Region       string          `json:"region"`
	RegionLabel  string          `json:"regionLabel"`
	Status       string          `json:"status"`
	Entries      []entryResponse `json:"entries"`
	DerivativeOf *string         `json:"derivativeOf,omitempty"`
}

type entryResponse struct {
	PartOfSpeech   string                `json:"partOfSpeech"`
	Senses         []senseResponse       `json:"senses"`
	AudioLink      *string               `json:"audioLink,omitempty"`
	Transitivity   *string               `json:"transitivity,omitempty"`
	OtherSpellings []variantFormResponse `json:"otherSpellings,omitempty"`
}

type senseResponse struct {
	Definition            *string         `json:"definition,omitempty"`
	CrossReferenceMarkers []string        `json:"crossReferenceMarkers,omitempty"`
	Registers             []string        `json:"registers,omitempty"`
	Regions               []string        `json:"regions,omitempty"`
	Examples              []string        `json:"examples,omitempty"`
	SubSenses             []senseResponse `json:"subSenses"`
}

type variantFormResponse struct {
	Text    string   `json:"text"`
	Regions []string `json:"regions,omitempty"`
}

type historyResponse struct {
	Items []historyItem `json:"items"`
}

type historyItem struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Region       string    `json:"region"`
	Outcome      string    `json:"outcome"`
	DerivativeOf *string   `json:"derivativeOf,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Lookup handles GET /api/v1/lookup?word=&region=.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	region := h.defaultRegion
	if raw := q.Get("region"); raw != "" {
		parsed, err := domain.ParseRegion(raw)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		region = parsed
	}

	result, err := h.svc.Resolve(r.Context(), q.Get("word"), region)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toLookupResponse(result))
}

// History handles GET /api/v1/history?limit=.
func (h *LookupHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = clampLimit(n)
	}

	records, err := h.svc.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			ID:           rec.ID.String(),
			Word:         rec.Word,
			Region:       rec.Region.String(),
			Outcome:      rec.Outcome.String(),
			DerivativeOf: rec.DerivativeOf,
			CreatedAt:    rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, historyResponse{Items: items})
}

func clampLimit(n int) int {
	return min(max(n, 1), maxHistoryLimit)
}

func toLookupResponse(res domain.LookupResult) lookupResponse {
	status := "not_found"
	if res.Found {
		status = "found"
	}

	entries := make([]entryResponse, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, toEntryResponse(e))
	}

	return lookupResponse{
		Word:         res.Word,
		Region:       res.Region.String(),
		RegionLabel:  res.Region.Label(),
		Status:       status,
		Entries:      entries,
		DerivativeOf: res.DerivativeOf,
	}
}

func toEntryResponse(e domain.Entry) entryResponse {
	senses := make([]senseResponse, 0, len(e.Senses))
	for _, s := range e.Senses {
		senses = append(senses, toSenseResponse(s))
	}

	var spellings []variantFormResponse
	for _, v := range e.OtherSpellings {
		spellings = append(spellings, variantFormResponse{Text: v.Text, Regions: v.Regions})
	}

	return entryResponse{
		PartOfSpeech:   e.PartOfSpeech,
		Senses:         senses,
		AudioLink:      e.AudioLink,
		Transitivity:   e.Transitivity,
		OtherSpellings: spellings,
	}
}

func toSenseResponse(s domain.Sense) senseResponse {
	resp := senseResponse{
		CrossReferenceMarkers: s.Definition.CrossReferenceMarkers,
		Registers:             s.Registers,
		Regions:               s.Regions,
		Examples:              s.Examples,
		SubSenses:             make([]senseResponse, 0, len(s.SubSenses)),
	}
	if s.Definition.Text != "" {
		text := s.Definition.Text
		resp.Definition = &text
	}
	for _, sub := range s.SubSenses {
		resp.SubSenses = append(resp.SubSenses, toSenseResponse(sub))
	}
	return resp
}
