package rest

import (
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/translit"
)

type translitResponse struct {
	Word string `json:"word"`
}

// Translit handles GET /api/v1/translit.
//
// With current and updated it applies one keystroke the way the input field
// does; with word it converts the whole word.
func Translit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch {
	case q.Has("updated"):
		writeJSON(w, http.StatusOK, translitResponse{Word: translit.Convert(q.Get("current"), q.Get("updated"))})
	case q.Has("word"):
		writeJSON(w, http.StatusOK, translitResponse{Word: translit.Normalize(q.Get("word"))})
	default:
		writeError(w, http.StatusBadRequest, "either word or updated is required")
	}
}
